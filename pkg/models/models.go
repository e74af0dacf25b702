package models

type State string

const (
	StateOK    State = "OK"
	StateAlert State = "ALERT"
)

// AlertThreshold is the lowest performance still reported as OK.
const AlertThreshold float64 = 80

// States lists every state in display order.
var States = []State{StateOK, StateAlert}

type MachineRecord struct {
	ID            int
	Name          string
	DurationHours int
	Performance   float64
	State         State
}

// RawInput carries the four form fields exactly as the user typed them.
type RawInput struct {
	ID          string
	Name        string
	Duration    string
	Performance string
}

func DeriveState(performance float64) State {
	if performance >= AlertThreshold {
		return StateOK
	}
	return StateAlert
}

// NewMachineRecord builds a record whose state agrees with performance.
func NewMachineRecord(id int, name string, durationHours int, performance float64) MachineRecord {
	return MachineRecord{
		ID:            id,
		Name:          name,
		DurationHours: durationHours,
		Performance:   performance,
		State:         DeriveState(performance),
	}
}

func (m MachineRecord) WithDerivedState() MachineRecord {
	m.State = DeriveState(m.Performance)
	return m
}

func (m MachineRecord) IsAlert() bool {
	return m.State == StateAlert
}
