package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	dtlog "github.com/msto63/dtparse/core/log"
	"github.com/msto63/dtparse/datetime"
)

func testParser(t *testing.T) *datetime.Parser {
	t.Helper()
	p, err := datetime.New(datetime.Options{
		YearExtension: datetime.Century1900,
		DefaultYear:   1981,
		Logger:        dtlog.Discard(),
	})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestParseBatchText(t *testing.T) {
	parseOutput = "text"
	in := strings.NewReader("Jan 1st 1900\n\n  12:30  \n")
	var out bytes.Buffer

	if err := parseBatch(testParser(t), in, &out); err != nil {
		t.Fatalf("parseBatch() error = %v", err)
	}
	want := "Jan 1st 1900\tAD 1900-01-01 00:00:00 +0000\n" +
		"12:30\tAD 1981-01-01 12:30:00 +0000\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestParseBatchJSON(t *testing.T) {
	parseOutput = "json"
	defer func() { parseOutput = "text" }()

	in := strings.NewReader("1990\nnonsense\n")
	var out bytes.Buffer

	err := parseBatch(testParser(t), in, &out)
	if err != errRejected {
		t.Errorf("parseBatch() error = %v, want errRejected", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), out.String())
	}

	var first, second struct {
		Input  string `json:"input"`
		OK     bool   `json:"ok"`
		Result struct {
			Canonical string `json:"canonical"`
		} `json:"result"`
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatal(err)
	}
	if !first.OK || first.Result.Canonical != "AD 1990-01-01 00:00:00 +0000" {
		t.Errorf("first = %+v", first)
	}
	if second.OK || second.Error.Code != "DATETIME_UNKNOWN_WORD" {
		t.Errorf("second = %+v", second)
	}
}
