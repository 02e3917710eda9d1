package models

// CodedDocument ist das Kodierungsergebnis für ein einzelnes Policy-PDF.
// Es wird nicht in der Datenbank gespeichert, sondern nach dem Lauf als
// CSV-Zeile (filename, output) geschrieben; Output ist das serialisierte
// Strukturergebnis des Klassifikators.
type CodedDocument struct {
	Filename string `json:"filename"`
	Output   string `json:"output"`
}
