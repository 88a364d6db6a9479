package csvfile

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"bikeshare/internal/core/filter"
	perr "bikeshare/internal/platform/errors"
	"bikeshare/internal/platform/testkit"
)

func TestLoad_ReadsCityFile(t *testing.T) {
	t.Parallel()
	dir := testkit.WriteFile(t, "chicago.csv", chicagoCSV)

	st, err := New(dir).Load(context.Background(), filter.Chicago)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	testkit.MustEqual(t, st.Len(), 3, "rows")
	testkit.MustEqual(t, st.City(), "chicago", "city")
	testkit.MustEqual(t, st.At(2).Index(), 2, "index")
	testkit.MustEqual(t, st.At(2).Month(), time.January, "month")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := New(t.TempDir()).Load(context.Background(), filter.Washington)
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
	if !perr.Recoverable(err) {
		t.Fatal("missing file should be recoverable")
	}
	testkit.MustContain(t, err.Error(), "Washington")
}

func TestLoad_UnknownCity(t *testing.T) {
	t.Parallel()
	_, err := New("").Load(context.Background(), filter.CityUnknown)
	if !perr.IsCode(err, perr.ErrorCodeInvalidCriteria) {
		t.Fatalf("want invalid criteria, got %v", err)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Parallel()
	dir := testkit.WriteFile(t, "new_york_city.csv", "Start Time,End Time\n")
	_, err := New(dir).Load(context.Background(), filter.NewYorkCity)
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
	e, _ := perr.As(err)
	testkit.MustEqual(t, e.Op(), "csvfile.load", "op")
}

func TestLoad_OpenFailure(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &openFile, func(string) (io.ReadCloser, error) { return nil, errors.New("permission denied") })

	_, err := New("data").Load(context.Background(), filter.Chicago)
	if !perr.IsCode(err, perr.ErrorCodeSource) {
		t.Fatalf("want source error, got %v", err)
	}
}

func TestRead_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Read(ctx, strings.NewReader(chicagoCSV), "chicago"); !errors.Is(err, context.Canceled) {
		t.Fatalf("want canceled, got %v", err)
	}
}
