package rig

// classify partitions one poll's device enumeration into per-class handle
// lists. Enumeration order is preserved per class and is what gives "index 0"
// its meaning; there is no re-sorting and no incremental diffing. Devices of
// an unrecognized class are simply absent from every list.
//
// The resulting index is stable until the next classify call, so all queries
// issued against one poll's snapshot resolve the same handles.
func classify(devices []DeviceInfo) map[DeviceClass][]DeviceHandle {
	index := make(map[DeviceClass][]DeviceHandle, 4)
	for _, d := range devices {
		if !d.Class.valid() {
			continue
		}
		index[d.Class] = append(index[d.Class], d.Handle)
	}
	return index
}
