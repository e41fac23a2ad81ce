package export

// Row is one task-creation record for the task service's CSV import.
type Row struct {
	Type        string `json:"type"`
	Content     string `json:"content"`
	Priority    int    `json:"priority"`
	Indent      int    `json:"indent"`
	Author      string `json:"author"`
	Responsible string `json:"responsible"`
	Date        string `json:"date"`
	DateLang    string `json:"date_lang"`
	Timezone    string `json:"timezone"`
}

var Header = []string{"type", "content", "priority", "indent", "author", "responsible", "date", "date_lang", "timezone"}
