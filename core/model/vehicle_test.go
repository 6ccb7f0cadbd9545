package model

import (
	"sync"
	"testing"
	"time"
)

func TestNewVehicleValidation(t *testing.T) {
	if _, err := NewVehicle("", TypeCar, "Tesla", "M3", 5000); err == nil {
		t.Fatalf("expected error for empty id")
	}
	if _, err := NewVehicle("v1", VehicleType("plane"), "Boeing", "747", 5000); err == nil {
		t.Fatalf("expected error for unknown type")
	}
	v, err := NewVehicle("v1", TypeCar, "Tesla", "M3", 5000)
	if err != nil {
		t.Fatalf("new vehicle: %v", err)
	}
	if v.BatteryLevel() != MaxBatteryLevel {
		t.Fatalf("expected full battery got %f", v.BatteryLevel())
	}
	if v.Status() != StatusAvailable {
		t.Fatalf("expected available got %s", v.Status())
	}
}

func TestDischargeNeverNegative(t *testing.T) {
	v, _ := NewVehicle("v1", TypeScooter, "Xiaomi", "M365", 500)
	for i := 0; i < 150; i++ {
		if lvl := v.Discharge(); lvl < 0 {
			t.Fatalf("battery went negative: %f", lvl)
		}
	}
	if v.BatteryLevel() != 0 {
		t.Fatalf("expected 0 got %f", v.BatteryLevel())
	}
	v.Recharge()
	if v.BatteryLevel() != MaxBatteryLevel {
		t.Fatalf("expected full battery after recharge got %f", v.BatteryLevel())
	}
}

func TestRepairFractionTable(t *testing.T) {
	cases := []struct {
		typ  VehicleType
		want float64
	}{
		{TypeCar, 0.07},
		{TypeBike, 0.04},
		{TypeScooter, 0.02},
		{VehicleType("boat"), 0},
	}
	for _, c := range cases {
		if got := c.typ.RepairFraction(); got != c.want {
			t.Errorf("%s: expected %f got %f", c.typ, c.want, got)
		}
	}
}

func TestRecordFault(t *testing.T) {
	v, _ := NewVehicle("v1", TypeBike, "Giant", "E+", 1200)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	reason := v.RecordFault(at)
	if reason != FaultTire && reason != FaultEngine {
		t.Fatalf("unexpected fault reason %q", reason)
	}
	gotReason, gotTime := v.Fault()
	if gotReason != reason || !gotTime.Equal(at) {
		t.Fatalf("fault not recorded: %q %v", gotReason, gotTime)
	}
	if v.Status() != StatusBroken {
		t.Fatalf("expected broken got %s", v.Status())
	}
}

func TestConcurrentMutators(t *testing.T) {
	v, _ := NewVehicle("v1", TypeCar, "Tesla", "M3", 5000)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				v.Discharge()
			}
		}()
	}
	wg.Wait()
	if lvl := v.BatteryLevel(); lvl < 0 || lvl > MaxBatteryLevel {
		t.Fatalf("battery out of range: %f", lvl)
	}
}
