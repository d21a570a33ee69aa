package game

// ItalianWords is the default word pool for the codenamez grid, matching the
// language of the original client.
var ItalianWords = []string{
	"ALBERO", "AMORE", "ANCORA", "AQUILA", "ARIA",
	"BANCA", "BARCA", "BOSCO", "BRACCIO", "CAMPO",
	"CANE", "CARTA", "CASTELLO", "CAVALLO", "CHIAVE",
	"CIELO", "COLLO", "CORONA", "CORSA", "CUORE",
	"DENTE", "DRAGO", "ESTATE", "FARO", "FERRO",
	"FESTA", "FIUME", "FOGLIA", "FORNO", "FUOCO",
	"GATTO", "GELATO", "GIARDINO", "GIOCO", "GHIACCIO",
	"ISOLA", "LAMPO", "LEONE", "LETTO", "LIBRO",
	"LUCE", "LUNA", "MARE", "MASCHERA", "MELA",
	"MONTAGNA", "MURO", "NAVE", "NEVE", "NOTTE",
	"OCCHIO", "OMBRA", "ONDA", "ORO", "PALLA",
	"PANE", "PESCE", "PIAZZA", "PIETRA", "PONTE",
	"PORTA", "RAGNO", "RE", "ROSA", "RUOTA",
	"SABBIA", "SCALA", "SERPENTE", "SOLE", "SPADA",
	"SPECCHIO", "STELLA", "STRADA", "TEMPO", "TERRA",
	"TORRE", "TRENO", "VENTO", "VETRO", "VULCANO",
}
