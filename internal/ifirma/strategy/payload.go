// Package strategy implements the iFirma invoice regime selection: five
// mutually-exclusive strategies, each mapping an invoice request to the
// wire payload of one iFirma endpoint, plus the ordered selector that
// dispatches between them.
package strategy

// Wire payload types for the iFirma JSON API. Field names follow the
// provider's Polish schema exactly; conversion from the domain model is
// explicit per regime, never reflection-driven.

// Contact is the Kontrahent block shared by all regimes. Regimes that
// resolve the country by display name fill Kraj; the rest fill KodKraju.
type Contact struct {
	Nazwa         string `json:"Nazwa"`
	Ulica         string `json:"Ulica"`
	NIP           string `json:"NIP,omitempty"`
	KodPocztowy   string `json:"KodPocztowy"`
	KodKraju      string `json:"KodKraju,omitempty"`
	Kraj          string `json:"Kraj,omitempty"`
	Miejscowosc   string `json:"Miejscowosc"`
	Email         string `json:"Email"`
	Wojewodztwo   string `json:"Wojewodztwo,omitempty"`
	OsobaFizyczna *bool  `json:"OsobaFizyczna,omitempty"`
}

// Position is a single invoice line item
type Position struct {
	StawkaVat       float64  `json:"StawkaVat"`
	Ilosc           int      `json:"Ilosc"`
	CenaJednostkowa float64  `json:"CenaJednostkowa"`
	NazwaPelna      string   `json:"NazwaPelna"`
	NazwaPelnaObca  string   `json:"NazwaPelnaObca,omitempty"`
	Jednostka       string   `json:"Jednostka"`
	JednostkaObca   string   `json:"JednostkaObca,omitempty"`
	TypStawkiVat    string   `json:"TypStawkiVat"`
	Rabat           *float64 `json:"Rabat,omitempty"`
}

// DomesticPayload is the fakturakraj/fakturawaluta request body. The
// currency regime reuses the domestic shape and adds TypSprzedazy and
// Waluta.
type DomesticPayload struct {
	Zaplacono             float64    `json:"Zaplacono"`
	LiczOd                string     `json:"LiczOd"`
	SplitPayment          bool       `json:"SplitPayment"`
	DataWystawienia       string     `json:"DataWystawienia"`
	DataSprzedazy         string     `json:"DataSprzedazy"`
	FormatDatySprzedazy   string     `json:"FormatDatySprzedazy"`
	TerminPlatnosci       string     `json:"TerminPlatnosci"`
	SposobZaplaty         string     `json:"SposobZaplaty"`
	RodzajPodpisuOdbiorcy string     `json:"RodzajPodpisuOdbiorcy"`
	WidocznyNumerGios     bool       `json:"WidocznyNumerGios"`
	TypSprzedazy          string     `json:"TypSprzedazy,omitempty"`
	Waluta                string     `json:"Waluta,omitempty"`
	Pozycje               []Position `json:"Pozycje"`
	Kontrahent            Contact    `json:"Kontrahent"`
}

// EUB2BPayload is the fakturaeksportuslugue request body. Reverse
// charge: no VAT line, no positions array.
type EUB2BPayload struct {
	NazwaUslugi              string  `json:"NazwaUslugi"`
	Zaplacono                float64 `json:"Zaplacono"`
	DataWystawienia          string  `json:"DataWystawienia"`
	DataSprzedazy            string  `json:"DataSprzedazy"`
	FormatDatySprzedazy      string  `json:"FormatDatySprzedazy"`
	DataObowiazkuPodatkowego string  `json:"DataObowiazkuPodatkowego"`
	SposobZaplaty            string  `json:"SposobZaplaty"`
	Kontrahent               Contact `json:"Kontrahent"`
}

// OSSPayload is the fakturaoss request body: B2C digital services taxed
// at the destination country's rate.
type OSSPayload struct {
	DataSprzedazy           string     `json:"DataSprzedazy"`
	FormatDatySprzedazy     string     `json:"FormatDatySprzedazy"`
	DataWystawienia         string     `json:"DataWystawienia"`
	Jezyk                   string     `json:"Jezyk"`
	Waluta                  string     `json:"Waluta"`
	LiczOd                  string     `json:"LiczOd"`
	RodzajPodpisuOdbiorcy   string     `json:"RodzajPodpisuOdbiorcy"`
	WidocznyNumerBdo        bool       `json:"WidocznyNumerBdo"`
	SprzedazUslug           bool       `json:"SprzedazUslug"`
	UstalenieMiejscaUslugi1 string     `json:"UstalenieMiejscaUslugi1"`
	UstalenieMiejscaUslugi2 string     `json:"UstalenieMiejscaUslugi2"`
	KrajDostawy             string     `json:"KrajDostawy"`
	KrajWysylki             string     `json:"KrajWysylki"`
	Pozycje                 []Position `json:"Pozycje"`
	Kontrahent              Contact    `json:"Kontrahent"`
}

// ExportPayload is the fakturaeksportuslug request body for non-EU
// customers: no VAT fields at all.
type ExportPayload struct {
	NazwaUslugi                string  `json:"NazwaUslugi"`
	UslugaSwiadczonaTrybArt28b bool    `json:"UslugaSwiadczonaTrybArt28b"`
	DataWystawienia            string  `json:"DataWystawienia"`
	DataSprzedazy              string  `json:"DataSprzedazy"`
	FormatDatySprzedazy        string  `json:"FormatDatySprzedazy"`
	DataObowiazkuPodatkowego   string  `json:"DataObowiazkuPodatkowego"`
	SposobZaplaty              string  `json:"SposobZaplaty"`
	Kontrahent                 Contact `json:"Kontrahent"`
}
