package model

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// MaxBatteryLevel is the battery level of a fully charged vehicle.
const MaxBatteryLevel = 100.0

// VehicleType discriminates the three vehicle variants in the fleet.
type VehicleType string

const (
	TypeCar     VehicleType = "car"
	TypeBike    VehicleType = "bike"
	TypeScooter VehicleType = "scooter"
)

// typeTraits holds the per-type business constants, dispatched by table
// instead of type switches.
type typeTraits struct {
	repairFraction float64 // fraction of the acquisition price billed on a fault
}

var traits = map[VehicleType]typeTraits{
	TypeCar:     {repairFraction: 0.07},
	TypeBike:    {repairFraction: 0.04},
	TypeScooter: {repairFraction: 0.02},
}

// Valid reports whether t is one of the known vehicle types.
func (t VehicleType) Valid() bool {
	_, ok := traits[t]
	return ok
}

// RepairFraction returns the fraction of the acquisition price charged to
// repair a faulty vehicle of this type. Unknown types cost nothing.
func (t VehicleType) RepairFraction() float64 {
	return traits[t].repairFraction
}

// Status describes the operational state of a vehicle.
type Status string

const (
	StatusAvailable        Status = "available"
	StatusUnderMaintenance Status = "under_maintenance"
	StatusBroken           Status = "broken"
)

// Fault reasons picked at random when a rental is flagged as faulty.
const (
	FaultTire   = "tire failure"
	FaultEngine = "engine failure"
)

// Vehicle is a fleet vehicle. Identity fields are immutable after creation;
// battery level, status and fault info are mutated during simulation.
// Mutators are mutex-guarded: a vehicle is logically owned by a single
// rental task at a time, but the lock keeps state sane if input data
// violates that assumption.
type Vehicle struct {
	ID           string
	Type         VehicleType
	Manufacturer string
	Model        string
	Price        float64 // acquisition price

	// Type-specific fields; only the ones matching Type are meaningful.
	Description    string    // car
	PurchaseDate   time.Time // car
	RangePerCharge float64   // bike
	MaxSpeed       float64   // scooter

	mu           sync.Mutex
	batteryLevel float64
	status       Status
	faultReason  string
	faultTime    time.Time
}

// NewVehicle creates a vehicle with a full battery and available status.
func NewVehicle(id string, typ VehicleType, manufacturer, model string, price float64) (*Vehicle, error) {
	if id == "" {
		return nil, fmt.Errorf("vehicle id is required")
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("unknown vehicle type %q", typ)
	}
	return &Vehicle{
		ID:           id,
		Type:         typ,
		Manufacturer: manufacturer,
		Model:        model,
		Price:        price,
		batteryLevel: MaxBatteryLevel,
		status:       StatusAvailable,
	}, nil
}

// BatteryLevel returns the current battery level in [0,100].
func (v *Vehicle) BatteryLevel() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.batteryLevel
}

// Discharge drains one unit of battery and returns the resulting level.
// The level never drops below zero.
func (v *Vehicle) Discharge() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.batteryLevel--
	if v.batteryLevel < 0 {
		v.batteryLevel = 0
	}
	return v.batteryLevel
}

// Recharge resets the battery to full.
func (v *Vehicle) Recharge() {
	v.mu.Lock()
	v.batteryLevel = MaxBatteryLevel
	v.mu.Unlock()
}

// Status returns the operational state.
func (v *Vehicle) Status() Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// SetStatus updates the operational state.
func (v *Vehicle) SetStatus(s Status) {
	v.mu.Lock()
	v.status = s
	v.mu.Unlock()
}

// Fault returns the recorded fault reason and time. The reason is empty if
// the vehicle never failed.
func (v *Vehicle) Fault() (string, time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.faultReason, v.faultTime
}

// RecordFault stamps the vehicle with a random fault cause and marks it
// broken. The last recorded fault wins on repeated failures.
func (v *Vehicle) RecordFault(at time.Time) string {
	reason := FaultTire
	if rand.Intn(2) == 0 {
		reason = FaultEngine
	}
	v.mu.Lock()
	v.faultReason = reason
	v.faultTime = at
	v.status = StatusBroken
	v.mu.Unlock()
	return reason
}

func (v *Vehicle) String() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return fmt.Sprintf("ID: %s, Type: %s, Manufacturer: %s, Model: %s, Price: %.2f, Battery Level: %.2f%%, Status: %s",
		v.ID, v.Type, v.Manufacturer, v.Model, v.Price, v.batteryLevel, v.status)
}
