package schedule_test

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/san-kum/heatloop/internal/control"
	"github.com/san-kum/heatloop/internal/metrics"
	"github.com/san-kum/heatloop/internal/plant"
	"github.com/san-kum/heatloop/internal/schedule"
)

// steppingClock advances simulated time whenever the loop sleeps.
type steppingClock struct {
	clockwork.FakeClock
}

func (c steppingClock) Sleep(d time.Duration) { c.Advance(d) }

type fakePlant struct {
	temp     float64
	heating  bool
	commands []float64
}

func (p *fakePlant) Temperature() float64 { return p.temp }
func (p *fakePlant) Heating() bool        { return p.heating }
func (p *fakePlant) ApplyCommand(u float64) {
	p.commands = append(p.commands, u)
	p.heating = u != 0
}

type status struct {
	elapsed     float64
	temperature float64
}

type fakeReporter struct {
	statuses []status
	events   []string
}

func (r *fakeReporter) Status(elapsed, temperature float64) {
	r.statuses = append(r.statuses, status{elapsed, temperature})
}

func (r *fakeReporter) Event(msg string) { r.events = append(r.events, msg) }

var _ = Describe("Loop", func() {
	var (
		mockCtrl   *gomock.Controller
		controller *MockController
		clock      steppingClock
		p          *fakePlant
		reporter   *fakeReporter
		cfg        schedule.Config
		built      []schedule.Tuning
		output     func(float64)
	)

	factory := func(in func() float64, out func(float64), sp float64, t schedule.Tuning) schedule.Controller {
		Expect(sp).To(Equal(88.0))
		built = append(built, t)
		output = out
		return controller
	}

	// computeSequence makes each Compute move the plant to the next
	// temperature in temps.
	computeSequence := func(temps ...float64) {
		i := 0
		controller.EXPECT().Compute().Do(func() {
			p.temp = temps[i]
			i++
		}).Times(len(temps))
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		controller = NewMockController(mockCtrl)
		clock = steppingClock{clockwork.NewFakeClock()}
		p = &fakePlant{temp: 18}
		reporter = &fakeReporter{}
		built = nil
		output = nil

		cfg = schedule.DefaultConfig()
		cfg.Iterations = 4
		cfg.ReportEvery = 2
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	newLoop := func() *schedule.Loop {
		return schedule.New(cfg, p, factory, reporter, schedule.WithClock(clock))
	}

	It("should build the controller with the profile of the initial gap", func() {
		p.temp = 85
		cfg.Iterations = 0
		controller.EXPECT().SetOutputLimits(0.0, 1.0).Return(nil)
		controller.EXPECT().SetAuto(true)

		result, err := newLoop().Run(context.Background())

		Expect(err).ToNot(HaveOccurred())
		Expect(built).To(Equal([]schedule.Tuning{schedule.DefaultProfiles().SmallGap}))
		Expect(result.Gap).To(Equal(schedule.SmallGap))
	})

	It("should retune when the gap crosses the threshold", func() {
		controller.EXPECT().SetOutputLimits(0.0, 1.0).Return(nil)
		controller.EXPECT().SetAuto(true)
		computeSequence(80, 80, 98, 98)
		gomock.InOrder(
			controller.EXPECT().SetTunings(1.0, 0.05, 0.25).Return(nil),
			controller.EXPECT().SetTunings(4.0, 0.2, 1.0).Return(nil),
		)

		result, err := newLoop().Run(context.Background())

		Expect(err).ToNot(HaveOccurred())
		Expect(built).To(Equal([]schedule.Tuning{schedule.DefaultProfiles().LargeGap}))
		Expect(result.Retunes).To(Equal(2))
		Expect(result.Gap).To(Equal(schedule.LargeGap))
		Expect(result.Temperatures).To(Equal([]float64{18, 80, 80, 98}))
		Expect(reporter.events).To(Equal([]string{
			"RETUNING FOR SMALL GAP",
			"RETUNING FOR LARGE GAP",
		}))
	})

	It("should report every ReportEvery iterations with elapsed seconds", func() {
		controller.EXPECT().SetOutputLimits(gomock.Any(), gomock.Any()).Return(nil)
		controller.EXPECT().SetAuto(true)
		controller.EXPECT().SetTunings(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		computeSequence(20, 30, 40, 50)

		_, err := newLoop().Run(context.Background())

		Expect(err).ToNot(HaveOccurred())
		Expect(reporter.statuses).To(HaveLen(2))
		Expect(reporter.statuses[0]).To(Equal(status{elapsed: 0, temperature: 20}))
		Expect(reporter.statuses[1].elapsed).To(BeNumerically("~", 0.002, 1e-9))
		Expect(reporter.statuses[1].temperature).To(Equal(40.0))
	})

	It("should retune on every iteration when hovering at the threshold", func() {
		p.temp = 78
		cfg.Iterations = 5
		controller.EXPECT().SetOutputLimits(gomock.Any(), gomock.Any()).Return(nil)
		controller.EXPECT().SetAuto(true)
		computeSequence(78.01, 78, 78.01, 78, 78.01)
		controller.EXPECT().SetTunings(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(4)

		result, err := newLoop().Run(context.Background())

		Expect(err).ToNot(HaveOccurred())
		Expect(result.Retunes).To(Equal(4))
	})

	It("should route controller output to the plant", func() {
		cfg.Iterations = 2
		controller.EXPECT().SetOutputLimits(gomock.Any(), gomock.Any()).Return(nil)
		controller.EXPECT().SetAuto(true)
		gomock.InOrder(
			controller.EXPECT().Compute().Do(func() { output(0.0001) }),
			controller.EXPECT().Compute().Do(func() { output(0) }),
		)

		result, err := newLoop().Run(context.Background())

		Expect(err).ToNot(HaveOccurred())
		Expect(p.commands).To(Equal([]float64{0.0001, 0}))
		Expect(result.Outputs).To(Equal([]float64{0.0001, 0}))
		Expect(p.heating).To(BeFalse())
	})

	It("should feed attached metrics", func() {
		cfg.Iterations = 2
		controller.EXPECT().SetOutputLimits(gomock.Any(), gomock.Any()).Return(nil)
		controller.EXPECT().SetAuto(true)
		controller.EXPECT().Compute().Do(func() { output(1) }).Times(2)

		l := newLoop()
		l.AddMetric(metrics.NewDutyCycle())
		result, err := l.Run(context.Background())

		Expect(err).ToNot(HaveOccurred())
		Expect(result.Metrics).To(HaveKeyWithValue("duty_cycle", 1.0))
	})

	It("should reject an invalid configuration before building a controller", func() {
		cfg.ReportEvery = 0

		_, err := newLoop().Run(context.Background())

		Expect(err).To(HaveOccurred())
		Expect(built).To(BeEmpty())
	})

	It("should fail when the controller rejects the output limits", func() {
		controller.EXPECT().SetOutputLimits(gomock.Any(), gomock.Any()).Return(control.ErrInvalidLimits)

		_, err := newLoop().Run(context.Background())

		Expect(err).To(MatchError(control.ErrInvalidLimits))
	})

	It("should fail when a retune is rejected", func() {
		controller.EXPECT().SetOutputLimits(gomock.Any(), gomock.Any()).Return(nil)
		controller.EXPECT().SetAuto(true)
		computeSequence(80)
		controller.EXPECT().SetTunings(gomock.Any(), gomock.Any(), gomock.Any()).Return(control.ErrNegativeGain)

		_, err := newLoop().Run(context.Background())

		Expect(err).To(MatchError(control.ErrNegativeGain))
	})

	It("should stop when the context is canceled", func() {
		controller.EXPECT().SetOutputLimits(gomock.Any(), gomock.Any()).Return(nil)
		controller.EXPECT().SetAuto(true)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := newLoop().Run(ctx)

		Expect(err).To(MatchError(context.Canceled))
		Expect(result.Temperatures).To(BeEmpty())
	})
})

var _ = Describe("Loop with a PID and a heater", func() {
	It("should bring the heater to the setpoint and hold it", func() {
		clock := steppingClock{clockwork.NewFakeClock()}
		heater := plant.NewHeater(plant.DefaultParams(), plant.WithClock(clock))
		factory := func(in func() float64, out func(float64), sp float64, t schedule.Tuning) schedule.Controller {
			return control.NewPID(in, out, sp, t.Kp, t.Ki, t.Kd, true, control.WithClock(clock))
		}

		cfg := schedule.DefaultConfig()
		cfg.Iterations = 60000

		l := schedule.New(cfg, heater, factory, &fakeReporter{}, schedule.WithClock(clock))
		l.AddMetric(metrics.NewOvershoot(cfg.Setpoint))
		result, err := l.Run(context.Background())

		Expect(err).ToNot(HaveOccurred())
		Expect(result.Retunes).To(BeNumerically(">=", 1))
		Expect(result.Gap).To(Equal(schedule.SmallGap))
		Expect(result.Metrics["overshoot"]).To(BeNumerically("<", 6))

		tail := result.Temperatures[len(result.Temperatures)-10000:]
		for _, temp := range tail {
			Expect(temp).To(BeNumerically(">=", 84))
			Expect(temp).To(BeNumerically("<=", 94))
		}
	})
})

var _ = DescribeTable("Classify",
	func(measurement float64, expected schedule.Gap) {
		Expect(schedule.Classify(measurement, 88, 10)).To(Equal(expected))
	},
	Entry("exactly below threshold", 78.0, schedule.LargeGap),
	Entry("exactly above threshold", 98.0, schedule.LargeGap),
	Entry("just inside below", 78.01, schedule.SmallGap),
	Entry("just inside above", 97.99, schedule.SmallGap),
	Entry("at setpoint", 88.0, schedule.SmallGap),
	Entry("ambient", 18.0, schedule.LargeGap),
)
