package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liyu1981.xyz/machine-stock/pkg/common"
	"liyu1981.xyz/machine-stock/pkg/inventory"
	"liyu1981.xyz/machine-stock/pkg/models"
	_ "liyu1981.xyz/machine-stock/pkg/testing"
)

func sampleInventory() *inventory.Inventory {
	return inventory.New(
		models.NewMachineRecord(1, "Lathe A", 120, 95.5),
		models.NewMachineRecord(2, "Press B", 60, 72.0),
	)
}

func TestCollectorGathers(t *testing.T) {
	common.SetTestLoggerNop()

	reg, err := NewRegistry(sampleInventory())
	require.NoError(t, err)

	expected := `
# HELP machine_stock_machines Number of machines in the inventory, partitioned by state.
# TYPE machine_stock_machines gauge
machine_stock_machines{state="ALERT"} 1
machine_stock_machines{state="OK"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "machine_stock_machines"))

	count, err := testutil.GatherAndCount(reg, "machine_stock_performance")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCollectorDuplicateNames(t *testing.T) {
	common.SetTestLoggerNop()

	inv := inventory.New(
		models.NewMachineRecord(1, "Twin", 1, 90),
		models.NewMachineRecord(1, "Twin", 1, 90),
	)
	reg, err := NewRegistry(inv)
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "machine_stock_performance")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestWriteTextfile(t *testing.T) {
	common.SetTestLoggerNop()

	path := filepath.Join(t.TempDir(), "machine_stock.prom")
	require.NoError(t, WriteTextfile(path, sampleInventory()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	assert.Contains(t, body, `machine_stock_machines{state="OK"} 1`)
	assert.Contains(t, body, `machine_stock_performance{machine="Press B",row="2",state="ALERT"} 72`)
}

func TestWriteTextfileBadPath(t *testing.T) {
	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "m.prom"), inventory.New())
	assert.Error(t, err)
}
