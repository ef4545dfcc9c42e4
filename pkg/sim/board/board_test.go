package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/motorctl/pkg/l0/hal"
	"github.com/robotalks/motorctl/pkg/l0/link"
)

type recorder struct {
	events []hal.IRQ
	ticks  int
	marks  []int
}

func (r *recorder) attach(b *Board) {
	irq := b.Interrupts()
	irq.Attach(hal.IRQTimerTick, func() {
		r.ticks++
		r.events = append(r.events, hal.IRQTimerTick)
	})
	irq.Attach(hal.IRQEdge, func() {
		r.marks = append(r.marks, r.ticks)
		r.events = append(r.events, hal.IRQEdge)
	})
	irq.Attach(hal.IRQConversion, func() {
		r.events = append(r.events, hal.IRQConversion)
	})
}

func newTestBoard(t *testing.T) (*Board, *recorder) {
	b := New(Config{})
	timer := b.PWM(0)
	require.NoError(t, timer.Configure(hal.PWMConfig{Period: 800, OverflowInterrupt: true}))
	timer.Start()
	require.NoError(t, b.PWM(1).Configure(hal.PWMConfig{Period: 800}))
	b.PWM(1).Start()
	b.EdgeInput().Sense(hal.EdgeBoth)
	r := &recorder{}
	r.attach(b)
	b.Interrupts().Enable()
	return b, r
}

func TestTimerOverflow(t *testing.T) {
	b, r := newTestBoard(t)
	b.Advance(8000)
	require.Equal(t, 10, r.ticks)
	b.Advance(799)
	require.Equal(t, 10, r.ticks)
	b.Advance(1)
	require.Equal(t, 11, r.ticks)
	require.Nil(t, b.PWM(2))
	require.Equal(t, ErrZeroPeriod, b.PWM(1).Configure(hal.PWMConfig{}))
}

func TestConversion(t *testing.T) {
	b, r := newTestBoard(t)
	adc := b.Analog()
	adc.SetSource(AnalogFunc(func(ch hal.ADCChannel, at time.Time) byte {
		return byte(ch) * 10
	}))
	adc.Start()
	b.Advance(DefaultConversionCycles)
	require.Empty(t, r.events, "converter not powered")

	adc.PowerUp()
	adc.Select(3)
	adc.Start()
	b.Advance(DefaultConversionCycles - 1)
	require.NotContains(t, r.events, hal.IRQConversion)
	b.Advance(1)
	require.Contains(t, r.events, hal.IRQConversion)
	require.Equal(t, byte(30), adc.Result())
}

func TestDropConversions(t *testing.T) {
	b, r := newTestBoard(t)
	adc := b.Analog()
	adc.PowerUp()
	adc.DropConversions(1)
	adc.Start()
	b.Advance(DefaultConversionCycles * 2)
	require.NotContains(t, r.events, hal.IRQConversion)
	adc.Start()
	b.Advance(DefaultConversionCycles)
	require.Contains(t, r.events, hal.IRQConversion)
	started, dropped := adc.Counters()
	require.Equal(t, uint64(2), started)
	require.Equal(t, uint64(1), dropped)
}

func TestSameCyclePriority(t *testing.T) {
	b, r := newTestBoard(t)
	adc := b.Analog()
	adc.PowerUp()
	b.Advance(800 - DefaultConversionCycles)
	adc.Start()
	b.Advance(DefaultConversionCycles)
	require.Equal(t, []hal.IRQ{hal.IRQTimerTick, hal.IRQConversion}, r.events)
}

func TestTransmitMeasuresTicks(t *testing.T) {
	b, r := newTestBoard(t)
	last, err := b.Edges().Transmit([]uint16{3, 5, 1})
	require.NoError(t, err)
	require.Equal(t, uint64(400+9*800), last)
	b.AdvanceTo(last)
	require.Equal(t, []int{3, 8, 9}, r.marks)
	require.Zero(t, b.Edges().Queued())
	require.True(t, b.Edges().Level())
}

func TestTransmitRequiresTickTimer(t *testing.T) {
	b := New(Config{})
	_, err := b.Edges().Transmit([]uint16{1})
	require.Equal(t, ErrNoTickTimer, err)
}

func TestSendFrame(t *testing.T) {
	b, r := newTestBoard(t)
	_, err := b.Edges().SendFrame(link.DefaultFrame, link.Timing{})
	require.Error(t, err)
	last, err := b.Edges().SendFrame(link.DefaultFrame, link.DefaultTiming)
	require.NoError(t, err)
	b.AdvanceTo(last)
	require.Len(t, r.marks, link.EdgesPerFrame)
}

func TestPendingUntilEnabled(t *testing.T) {
	b := New(Config{})
	require.NoError(t, b.PWM(0).Configure(hal.PWMConfig{Period: 800, OverflowInterrupt: true}))
	b.PWM(0).Start()
	r := &recorder{}
	r.attach(b)
	b.Advance(1600)
	require.Zero(t, r.ticks)
	b.Interrupts().Enable()
	b.Advance(0)
	require.Equal(t, 1, r.ticks, "pending flags coalesce")
}

func TestMaskedBlocksHandlers(t *testing.T) {
	b, r := newTestBoard(t)
	done := make(chan struct{})
	hal.Masked(b.Interrupts(), func() {
		go func() {
			b.Advance(800)
			close(done)
		}()
		time.Sleep(20 * time.Millisecond)
		require.Zero(t, r.ticks)
	})
	<-done
	require.Equal(t, 1, r.ticks)
}

func TestVirtualTime(t *testing.T) {
	epoch := time.Unix(1000, 0)
	b := New(Config{SystemClock: 16000000, Epoch: epoch})
	require.Equal(t, uint64(64000), b.Cycles(4*time.Millisecond))
	require.Equal(t, uint64(16000000*3600), b.Cycles(time.Hour))
	require.Equal(t, epoch.Add(50*time.Microsecond), b.TimeAt(800))
	require.Equal(t, epoch.Add(4*time.Millisecond), b.Step(4*time.Millisecond))
}

func TestDutyCycle(t *testing.T) {
	b, _ := newTestBoard(t)
	timer := b.Timer(1)
	hal.SetDuty(timer.Compare(), 200)
	require.Equal(t, uint16(200), timer.Duty())
	require.InDelta(t, 0.25, timer.DutyCycle(), 1e-9)
	hal.SetDuty(timer.Compare(), 900)
	require.Equal(t, 1.0, timer.DutyCycle())
}
