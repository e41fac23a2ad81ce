package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCSVWriter_Run(t *testing.T) {
	rows := []Row{
		{
			Type:     "task",
			Content:  "Pay rent",
			Priority: 2,
			Indent:   1,
			Date:     "every 1 month at 9am starting on the 1st",
			DateLang: "en",
		},
		{
			Type:     "task",
			Content:  `Buy "milk", eggs`,
			Priority: 2,
			Indent:   1,
			Date:     "2030-05-17 14:45",
			DateLang: "en",
			Timezone: "Europe/Amsterdam",
		},
	}

	var buf bytes.Buffer
	if err := NewCSVWriter().Run(&buf, rows); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %q", len(lines), buf.String())
	}

	if lines[0] != "type,content,priority,indent,author,responsible,date,date_lang,timezone" {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if lines[1] != "task,Pay rent,2,1,,,every 1 month at 9am starting on the 1st,en," {
		t.Errorf("Unexpected first row: %s", lines[1])
	}
	if lines[2] != `task,"Buy ""milk"", eggs",2,1,,,2030-05-17 14:45,en,Europe/Amsterdam` {
		t.Errorf("Unexpected second row: %s", lines[2])
	}
}

func TestCSVWriter_Run_NoRows(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCSVWriter().Run(&buf, nil); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if buf.String() != "type,content,priority,indent,author,responsible,date,date_lang,timezone\n" {
		t.Errorf("Expected header only, got: %q", buf.String())
	}
}

func TestCSVWriter_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	err := NewCSVWriter().WriteFile(path, []Row{{Type: "task", Content: "x", Priority: 2, Indent: 1}})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "task,x,2,1,,,,,") {
		t.Errorf("Expected row in file, got: %q", string(data))
	}
}
