package schema

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"layoffs/pkg/records"
)

func TestCheckHeaderAccepts(t *testing.T) {
	if err := LayoffContract().CheckHeader(Columns); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Extra columns are tolerated.
	header := append([]string{"extra"}, Columns...)
	if err := LayoffContract().CheckHeader(header); err != nil {
		t.Fatalf("unexpected error with extra column: %v", err)
	}
}

func TestCheckHeaderReportsMissing(t *testing.T) {
	header := []string{ColCompany, ColLocation, ColIndustry}
	err := LayoffContract().CheckHeader(header)
	if err == nil {
		t.Fatalf("expected mismatch error")
	}
	var me *MismatchError
	if !errors.As(err, &me) {
		t.Fatalf("error type %T, want *MismatchError", err)
	}
	want := []string{ColTotalLaidOff, ColPercentageLaidOff, ColDate, ColStage, ColCountry, ColFundsRaisedMillions}
	if !reflect.DeepEqual(me.Missing, want) {
		t.Fatalf("missing = %v, want %v", me.Missing, want)
	}
}

func TestFromRecordValuesRoundTrip(t *testing.T) {
	d := time.Date(2020, time.March, 11, 0, 0, 0, 0, time.UTC)
	r := records.Record{
		ColCompany:             "Acme",
		ColLocation:            "SF Bay Area",
		ColIndustry:            "Crypto",
		ColTotalLaidOff:        int64(50),
		ColPercentageLaidOff:   0.25,
		ColDate:                d,
		ColStage:               "Series B",
		ColCountry:             "United States",
		ColFundsRaisedMillions: int64(120),
	}
	l := FromRecord(r)
	got := l.Values()
	want := []any{"Acme", "SF Bay Area", "Crypto", int64(50), 0.25, d, "Series B", "United States", int64(120)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("values = %#v, want %#v", got, want)
	}
}

func TestFromRecordNulls(t *testing.T) {
	l := FromRecord(records.Record{ColCompany: "Acme"})
	got := l.Values()
	if got[0] != "Acme" {
		t.Fatalf("company = %v", got[0])
	}
	for i := 1; i < len(got); i++ {
		if got[i] != nil {
			t.Fatalf("values[%d] = %v, want nil", i, got[i])
		}
	}
}
