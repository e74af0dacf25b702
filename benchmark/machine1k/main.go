package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"liyu1981.xyz/machine-stock/pkg/common"
	"liyu1981.xyz/machine-stock/pkg/db"
	"liyu1981.xyz/machine-stock/pkg/models"
	"liyu1981.xyz/machine-stock/pkg/persistence"
	"liyu1981.xyz/machine-stock/pkg/stock"
)

var maxMachines int = 1000
var rounds int = 20

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

func main() {
	common.SetTestLoggerNop()

	dir, err := os.MkdirTemp("", "machine1k")
	if err != nil {
		log.Fatal("Failed to create work directory:", err)
	}
	defer os.RemoveAll(dir)

	inputs := make([]models.RawInput, maxMachines)
	for i := 0; i < maxMachines; i++ {
		inputs[i] = randomInput(i)
	}
	fmt.Printf("generated %v machine inputs\n", maxMachines)

	csvStore := persistence.NewCSVStore(filepath.Join(dir, "machines.csv"))
	benchStore("csv", csvStore, inputs)

	sqliteStore, err := db.OpenPath(filepath.Join(dir, "machines.db"))
	if err != nil {
		log.Fatal("Failed to open sqlite store:", err)
	}
	defer sqliteStore.Close()
	benchStore("sqlite", sqliteStore, inputs)
}

func benchStore(name string, store persistence.Store, inputs []models.RawInput) {
	s := stock.New(store)

	startTime := time.Now()
	for _, raw := range inputs {
		if _, err := s.AddMachine(raw); err != nil {
			log.Fatalf("add %v: %v", raw, err)
		}
	}
	usedTime := time.Since(startTime)
	fmt.Printf(
		"[%s] added %v machines: used time=%v seconds, throughput=%v action/second\n",
		name, len(inputs), usedTime.Seconds(), float64(len(inputs))/usedTime.Seconds(),
	)

	startTime = time.Now()
	for i := 0; i < rounds; i++ {
		if err := s.Save(); err != nil {
			log.Fatalf("save round %v: %v", i, err)
		}
		if err := s.Load(); err != nil {
			log.Fatalf("load round %v: %v", i, err)
		}
		fmt.Printf("\r[%s] round trip %v", name, i)
	}
	usedTime = time.Since(startTime)

	if s.Inventory.Len() != len(inputs) {
		log.Fatalf("[%s] expected %v machines after reload, got %v", name, len(inputs), s.Inventory.Len())
	}

	counts := s.Inventory.CountByState()
	fmt.Printf(
		"\r[%s] %v save/load round trips: used time=%v seconds, throughput=%v rows/second, OK=%v ALERT=%v\n",
		name, rounds, usedTime.Seconds(), float64(rounds*len(inputs)*2)/usedTime.Seconds(),
		counts[models.StateOK], counts[models.StateAlert],
	)
}

func flipCoin() bool {
	return rnd.Int31n(100000)%2 == 0
}

func rndFloat64(min, max float64, decimal int) float64 {
	val := min + rnd.Float64()*(max-min)
	multiplier := float64(math.Pow10(decimal))
	return float64(math.Round(float64(val)*float64(multiplier))) / multiplier
}

func randomInput(i int) models.RawInput {
	name := "Machine " + uuid.NewString()[:8]
	if flipCoin() {
		// exercise csv quoting
		name = fmt.Sprintf("%q, bay %d", name, i%12)
	}
	return models.RawInput{
		ID:          fmt.Sprint(i + 1),
		Name:        name,
		Duration:    fmt.Sprint(rnd.Intn(10000)),
		Performance: fmt.Sprintf("%.2f", rndFloat64(40.0, 100.0, 2)),
	}
}
