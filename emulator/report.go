package emulator

import (
	"fmt"
	"io"
	"iter"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ezrec/duet/cpu"
	"github.com/ezrec/duet/internal"
)

// status yields the machine's non-register state by name.
func (m *Machine) status() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		ip := "halt"
		if m.Ip != cpu.IP_HALT {
			ip = fmt.Sprintf("%d", m.Ip)
		}

		_ = yield("state", m.State.String()) &&
			yield("ip", ip) &&
			yield("line", m.LineNo()) &&
			yield("ticks", m.Ticks) &&
			yield("sent", m.Sent) &&
			yield("received", m.Received)
	}
}

// registers yields the registers by name.
func (m *Machine) registers(all bool) iter.Seq2[string, any] {
	nonzero := func(_ cpu.Register, value int64) bool { return all || value != 0 }

	return func(yield func(string, any) bool) {
		for r, value := range internal.Filter2(m.RegisterFile.All(), nonzero) {
			if !yield(r.String(), value) {
				return
			}
		}
	}
}

// Report writes a table of the machine state followed by its registers.
// Unless all is set, registers holding zero are left out.
func (m *Machine) Report(w io.Writer, all bool) (err error) {
	tw := table.NewWriter()
	tw.SetTitle("Machine")
	tw.AppendHeader(table.Row{"Name", "Value"})

	for name, value := range internal.Concat2(m.status(), m.registers(all)) {
		tw.AppendRow(table.Row{name, value})
	}

	_, err = fmt.Fprintln(w, tw.Render())
	return
}
