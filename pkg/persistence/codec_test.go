package persistence

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liyu1981.xyz/machine-stock/pkg/models"
)

const exampleFile = "ID,Machine,Duration,Performance,State\n" +
	"1,Lathe A,120,95.5,OK\n" +
	"2,Press B,60,72.0,ALERT\n"

func exampleRecords() []models.MachineRecord {
	return []models.MachineRecord{
		models.NewMachineRecord(1, "Lathe A", 120, 95.5),
		models.NewMachineRecord(2, "Press B", 60, 72.0),
	}
}

func TestMarshalExample(t *testing.T) {
	data, err := Marshal(exampleRecords())
	require.NoError(t, err)
	assert.Equal(t, exampleFile, string(data))
}

func TestMarshalEmptyWritesHeaderOnly(t *testing.T) {
	data, err := Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, "ID,Machine,Duration,Performance,State\n", string(data))
}

func TestFormatPerformance(t *testing.T) {
	tests := map[float64]string{
		72:          "72.0",
		95.5:        "95.5",
		0:           "0.0",
		-3:          "-3.0",
		0.1:         "0.1",
		79.99999999: "79.99999999",
		math.Inf(1): "+Inf",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatPerformance(in))
	}
	assert.Equal(t, "NaN", FormatPerformance(math.NaN()))
}

func TestRoundTrip(t *testing.T) {
	sets := map[string][]models.MachineRecord{
		"empty":   {},
		"example": exampleRecords(),
		"awkward names": {
			models.NewMachineRecord(1, "Lathe, big", 1, 80),
			models.NewMachineRecord(1, `Press "B"`, 2, 79.999),
			models.NewMachineRecord(-4, "multi\nline", -10, 0.1+0.2),
			models.NewMachineRecord(5, " leading space", 0, 1e-7),
			models.NewMachineRecord(6, "ünïcødé 机器", 1<<40, 1e21),
			models.NewMachineRecord(7, "a\rb", 1, 90),
			models.NewMachineRecord(8, "a\r", 1, 90),
			mustValidate(t, models.RawInput{ID: "9", Name: "a\r\nb", Duration: "1", Performance: "90"}),
		},
	}

	for name, records := range sets {
		t.Run(name, func(t *testing.T) {
			data, err := Marshal(records)
			require.NoError(t, err)

			got, err := Unmarshal(data)
			require.NoError(t, err)
			assert.Equal(t, records, got)
		})
	}
}

func TestUnmarshalIgnoresHeaderContent(t *testing.T) {
	got, err := Unmarshal([]byte("whatever,we,find\n3,Saw,4,81,OK\n"))
	require.NoError(t, err)
	assert.Equal(t, []models.MachineRecord{models.NewMachineRecord(3, "Saw", 4, 81)}, got)
}

func TestUnmarshalEmptyInput(t *testing.T) {
	got, err := Unmarshal(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnmarshalRecomputesState(t *testing.T) {
	got, err := Unmarshal([]byte("ID,Machine,Duration,Performance,State\n" +
		"1,Lathe A,120,50,OK\n" +
		"2,Press B,60,99,bogus\n"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.StateAlert, got[0].State)
	assert.Equal(t, models.StateOK, got[1].State)
}

func TestUnmarshalAcceptsCRLF(t *testing.T) {
	got, err := Unmarshal([]byte(strings.ReplaceAll(exampleFile, "\n", "\r\n")))
	require.NoError(t, err)
	assert.Equal(t, exampleRecords(), got)
}

func TestUnmarshalRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		body string
		line int
	}{
		{"four fields", "1,Lathe A,120,95.5,OK\n2,Press B,60,72.0\n", 3},
		{"six fields", "1,Lathe A,120,95.5,OK,extra\n", 2},
		{"bad id", "x,Lathe A,120,95.5,OK\n", 2},
		{"bad duration", "1,Lathe A,1.5,95.5,OK\n", 2},
		{"bad performance", "1,Lathe A,120,fast,OK\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unmarshal([]byte("ID,Machine,Duration,Performance,State\n" + tt.body))
			assert.Nil(t, got, "no partial result")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrPersistence))

			var perr *PersistenceError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestUnmarshalRejectsBrokenQuoting(t *testing.T) {
	_, err := Unmarshal([]byte("ID,Machine,Duration,Performance,State\n1,\"Lathe,120,95.5,OK\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
}

func mustValidate(t *testing.T, raw models.RawInput) models.MachineRecord {
	t.Helper()
	m, err := models.Validate(raw)
	require.NoError(t, err)
	return m
}

func TestMarshalRefusesCRLFName(t *testing.T) {
	records := []models.MachineRecord{
		models.NewMachineRecord(1, "Lathe A", 120, 95.5),
		models.NewMachineRecord(2, "a\r\nb", 1, 90),
	}

	data, err := Marshal(records)
	assert.Nil(t, data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, ErrCRLFName)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "serialize", perr.Op)
	assert.Equal(t, 3, perr.Line)
}
