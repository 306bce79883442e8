package sequencer

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/hvi/engine"
)

func buildFrameAverager(t *testing.T) *Program {
	assert := assert.New(t)

	lead, err := engine.NewDeviceRegisterFile("lead.k7z", "HVI_GLOBAL_MultAB", "HVI_CH1_Amplitude0")
	assert.NoError(err)
	avg, err := engine.NewDeviceRegisterFile("avg.k7z", "PC_CH1_Control")
	assert.NoError(err)

	table := engine.NewTable()
	_, err = table.DeclareEngine(engine.Descriptor{
		Name:            "AWG_LEAD",
		Actions:         []string{"awg1_trigger", "awg2_trigger"},
		DeviceRegisters: lead,
	})
	assert.NoError(err)
	_, err = table.DeclareEngine(engine.Descriptor{
		Name:            "DIG_0",
		Actions:         []string{"daq1_trigger"},
		Events:          []string{"fp1"},
		DeviceRegisters: avg,
	})
	assert.NoError(err)
	_, err = table.DeclareRegister("AWG_LEAD", "Amplitude", 100)
	assert.NoError(err)
	_, err = table.DeclareRegister("AWG_LEAD", "Iterations", 0)
	assert.NoError(err)
	_, err = table.DeclareRegister("DIG_0", "status", 0)
	assert.NoError(err)

	b := NewBuilder("FrameAverager", table)
	check := func(_ string, err error) {
		assert.NoError(err)
	}

	_, err = b.StartMultiSequenceBlock("Init", DELAY_MULTI_SEQUENCE_BLOCK)
	assert.NoError(err)
	check(b.SetRegister("Reset", "AWG_LEAD", "Iterations", 0, DELAY_STATEMENT))
	check(b.WriteDeviceRegister("Amp", "AWG_LEAD", "HVI_CH1_Amplitude0", Register("Amplitude"), DELAY_STATEMENT))
	check(b.SetAmplitude("Level", "AWG_LEAD", 1, 0.5, DELAY_STATEMENT))
	check(b.WriteDeviceRegister("Arm", "DIG_0", "PC_CH1_Control", Literal(1), DELAY_STATEMENT))
	assert.NoError(b.EndMultiSequenceBlock())

	_, err = b.StartSyncWhile("Frames", "AWG_LEAD", "Iterations", COMPARATOR_LESS_THAN, 4, DELAY_SYNC_WHILE)
	assert.NoError(err)

	_, err = b.StartMultiSequenceBlock("Acquire", DELAY_MULTI_SEQUENCE_BLOCK)
	assert.NoError(err)
	check(b.QueueWaveform("Queue", "AWG_LEAD", 1, 1, 0, Literal(0), DELAY_STATEMENT))
	check(b.ExecuteActions("Trigger", "AWG_LEAD", []string{"awg1_trigger", "awg2_trigger"}, DELAY_STATEMENT))
	check(b.IncrementRegister("Count", "AWG_LEAD", "Iterations", DELAY_STATEMENT))
	check(b.ExecuteActions("Capture", "DIG_0", []string{"daq1_trigger"}, DELAY_STATEMENT))
	check(b.ReadDeviceRegister("Status", "DIG_0", "PC_CH1_Control", "status", DELAY_STATEMENT))
	_, err = b.StartIf("Failed", "DIG_0", "status", COMPARATOR_NOT_EQUAL, 0, DELAY_STATEMENT)
	assert.NoError(err)
	check(b.Delay("Backoff", "DIG_0", 100))
	assert.NoError(b.EndIf("DIG_0"))
	check(b.SubtractFromRegister("Clear", "DIG_0", "status", Register("status"), DELAY_STATEMENT))
	assert.NoError(b.EndMultiSequenceBlock())

	_, err = b.StartSyncWhile("Settle", "DIG_0", "status", COMPARATOR_GREATER_THAN, 0, DELAY_SYNC_WHILE)
	assert.NoError(err)
	_, err = b.StartMultiSequenceBlock("Drain", DELAY_MULTI_SEQUENCE_BLOCK)
	assert.NoError(err)
	check(b.DecrementRegister("Drain", "DIG_0", "status", DELAY_STATEMENT))
	assert.NoError(b.EndMultiSequenceBlock())
	assert.NoError(b.EndSyncWhile())

	assert.NoError(b.EndSyncWhile())

	prog, err := b.Build()
	assert.NoError(err)
	if err != nil {
		t.FailNow()
	}

	return prog
}

func TestProgram_Dump(t *testing.T) {
	g := goldie.New(t)

	var buf bytes.Buffer
	assert.NoError(t, buildExample(t, newBuilder(t)).Dump(&buf))
	g.Assert(t, "example", buf.Bytes())

	buf.Reset()
	assert.NoError(t, buildFrameAverager(t).Dump(&buf))
	g.Assert(t, "frame_averager", buf.Bytes())
}

func TestBuilder_DumpPartial(t *testing.T) {
	assert := assert.New(t)

	b := newBuilder(t)
	_, err := b.StartMultiSequenceBlock("Init", DELAY_MULTI_SEQUENCE_BLOCK)
	assert.NoError(err)
	_, err = b.SetRegister("Zero ctr", "A", "ctr", 0, DELAY_STATEMENT)
	assert.NoError(err)

	var buf bytes.Buffer
	assert.NoError(b.Dump(&buf))
	assert.Contains(buf.String(), `"Zero ctr" set_register delay 10: ctr = 0`)
}

func TestProgram_Mermaid(t *testing.T) {
	g := goldie.New(t)

	var buf bytes.Buffer
	assert.NoError(t, buildExample(t, newBuilder(t)).Mermaid(&buf))
	g.Assert(t, "example_mermaid", buf.Bytes())
}
