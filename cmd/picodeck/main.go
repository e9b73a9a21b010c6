//go:build tinygo

// Command picodeck is the RP2040 firmware.  UART0 carries the bridge
// protocol to the host, UART1 receives raw HID keyboard reports from the
// companion USB host controller, and the panel is a 16x2 HD44780 plus two
// rotary encoders with push buttons.
package main

import (
	"machine"

	"github.com/picodeck/picodeck/bridge"
	"github.com/picodeck/picodeck/drivers/hidkbd"
	"github.com/picodeck/picodeck/drivers/lcd"
)

// Panel wiring.
const (
	lcdRS = machine.GP6
	lcdE  = machine.GP7
	lcdD4 = machine.GP10
	lcdD5 = machine.GP11
	lcdD6 = machine.GP12
	lcdD7 = machine.GP13

	encVA = machine.GP14
	encVB = machine.GP15
	btnV  = machine.GP16 // Enter

	encHA = machine.GP17
	encHB = machine.GP18
	btnH  = machine.GP19 // Backspace
)

func output(p machine.Pin) lcd.Pin {
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return func(level bool) { p.Set(level) }
}

func input(p machine.Pin) func() bool {
	p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return func() bool { return p.Get() }
}

func main() {
	host := machine.UART0
	host.Configure(machine.UARTConfig{BaudRate: 115200, TX: machine.GP0, RX: machine.GP1})

	kbd := machine.UART1
	kbd.Configure(machine.UARTConfig{BaudRate: 115200, TX: machine.GP8, RX: machine.GP9})

	disp := lcd.New(lcd.Pins{
		RS: output(lcdRS), E: output(lcdE),
		D4: output(lcdD4), D5: output(lcdD5), D6: output(lcdD6), D7: output(lcdD7),
	}, 16, 2)
	disp.Init()
	disp.DrawRow(0, []byte("picodeck ready  "))
	disp.DrawRow(1, []byte("waiting for host"))

	eva, evb := input(encVA), input(encVB)
	eha, ehb := input(encHA), input(encHB)
	bv, bh := input(btnV), input(btnH)

	in := bridge.Inputs{
		EncoderV: func() (bool, bool) { return eva(), evb() },
		EncoderH: func() (bool, bool) { return eha(), ehb() },
		// Buttons are wired to ground, pressed reads low.
		ButtonV:  func() bool { return !bv() },
		ButtonH:  func() bool { return !bh() },
		Keyboard: hidkbd.NewUARTReports(kbd),
	}

	ctl := bridge.NewController(host, in, disp, host, bridge.Config{})
	ctl.Run()
}
