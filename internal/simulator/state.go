package simulator

// Power reports the simulated target power state.
func (d *Device) Power() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.power
}

// Bypass reports the simulated bypass state.
func (d *Device) Bypass() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bypass
}

// Pin returns the state of pin n.
func (d *Device) Pin(n uint8) Pin {
	d.mu.Lock()
	defer d.mu.Unlock()
	if int(n) >= PinCount {
		return Pin{}
	}
	return d.pins[n]
}

// SetInput sets the externally applied level seen by pin n when it is an input.
func (d *Device) SetInput(n uint8, high bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if int(n) < PinCount {
		d.pins[n].Input = high
	}
}

// Frames returns a copy of every request frame received so far.
func (d *Device) Frames() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([][]byte, len(d.frames))
	for i, f := range d.frames {
		out[i] = append([]byte(nil), f...)
	}
	return out
}

// LastFrame returns the most recent request frame, or nil.
func (d *Device) LastFrame() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.frames) == 0 {
		return nil
	}
	return append([]byte(nil), d.frames[len(d.frames)-1]...)
}

// FailNext makes the next VendorCmd return err without touching device state.
func (d *Device) FailNext(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failErr = err
}

// Disconnect makes every later VendorCmd fail with ErrDisconnected.
func (d *Device) Disconnect() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gone = true
}

// Closed reports whether Close has been called.
func (d *Device) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}
