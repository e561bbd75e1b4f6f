package utils

import (
	"fmt"
	"unsafe"

	"github.com/notargets/gocca"
)

// CreateTestDevice creates a Device for testing, preferring parallel backends
func CreateTestDevice() *gocca.OCCADevice {
	backends := []string{
		`{"mode": "OpenMP"}`,
		`{"mode": "CUDA", "device_id": 0}`,
		`{"mode": "Serial"}`,
	}

	for _, props := range backends {
		device, err := gocca.NewDevice(props)
		if err == nil {
			fmt.Printf("Created %s Device\n", device.Mode())
			return device
		}
	}

	// Should not reach here
	panic("Failed to create any Device")
}

// MaterializeToHost copies n float64 values from device memory into a
// fresh host slice. The export pipeline is host-memory-only; a state
// container holding device-resident solution data calls this before
// handing buffers to the exporter.
func MaterializeToHost(mem *gocca.OCCAMemory, n int) []float64 {
	host := make([]float64, n)
	if n > 0 {
		mem.CopyTo(unsafe.Pointer(&host[0]), int64(n*8))
	}
	return host
}

// MaterializeToDevice uploads a host buffer to a fresh device
// allocation, the inverse of MaterializeToHost
func MaterializeToDevice(device *gocca.OCCADevice, host []float64) *gocca.OCCAMemory {
	return device.Malloc(int64(len(host)*8), unsafe.Pointer(&host[0]), nil)
}
