// libsimulator builds the simulator as a C shared library:
//
//	go build -buildmode=c-shared -o libsimulator.so ./cmd/libsimulator
//
// Hosts include internal/api/bindings.h for the shared types. The exported
// functions are SimulatorVersion, NewSimulatorState, ReleaseSimulatorState,
// CreateContract, CallContract, GetBalance and SetBalance, plus the accessor
// functions get_value, insert_value and remove_value.
package main

import (
	_ "github.com/contractsim/simulator/internal/api"
)

func main() {}
