package portfolio

import (
	"bufio"
	"encoding/json"
	"os"
	"testing"
)

func TestJSONLRecorder(t *testing.T) {
	tmp := t.TempDir()
	path := tmp + "/trades.jsonl"

	recorder, err := NewJSONLRecorder(path)
	if err != nil {
		t.Fatalf("NewJSONLRecorder error: %v", err)
	}

	account := NewAccount(1000, Limits{})
	account.SetRecorder(recorder)
	if _, err := account.Execute("qb1", Buy, 2, 100); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open recorded file: %v", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		t.Fatalf("expected one line in recorder output")
	}
	var decoded Trade
	if err := json.Unmarshal(scanner.Bytes(), &decoded); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if decoded.PlayerID != "qb1" || decoded.Side != Buy || decoded.Shares != 2 {
		t.Fatalf("unexpected decoded trade: %+v", decoded)
	}
}
