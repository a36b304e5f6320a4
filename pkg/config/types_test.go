package config_test

import (
	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/tmuxflash/pkg/config"
)

var _ = Describe("Duration", func() {
	Describe("UnmarshalText", func() {
		It("should parse valid duration strings", func() {
			var d config.Duration
			Expect(d.UnmarshalText([]byte("300ms"))).To(Succeed())
			Expect(d.String()).To(Equal("300ms"))
		})

		It("should parse duration with multiple units", func() {
			var d config.Duration
			Expect(d.UnmarshalText([]byte("1h30m"))).To(Succeed())
			Expect(d.String()).To(Equal("1h30m0s"))
		})

		It("should return error for invalid duration format", func() {
			var d config.Duration
			err := d.UnmarshalText([]byte("invalid"))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("invalid duration"))
		})

		It("should return error for negative duration", func() {
			var d config.Duration
			err := d.UnmarshalText([]byte("-5s"))
			Expect(errors.Is(err, config.ErrNegativeDuration)).To(BeTrue())
		})
	})

	Describe("MarshalText", func() {
		It("should marshal duration to text", func() {
			var d config.Duration
			_ = d.UnmarshalText([]byte("10m"))
			text, err := d.MarshalText()
			Expect(err).NotTo(HaveOccurred())
			Expect(string(text)).To(Equal("10m0s"))
		})
	})

	Describe("ToDuration", func() {
		It("should convert to time.Duration", func() {
			var d config.Duration
			_ = d.UnmarshalText([]byte("30s"))
			Expect(d.ToDuration().Seconds()).To(Equal(float64(30)))
		})
	})

	Describe("JSONSchema", func() {
		It("should describe a string with a duration pattern", func() {
			s := config.Duration(0).JSONSchema()
			Expect(s.Type).To(Equal("string"))
			Expect(s.Pattern).To(ContainSubstring("ms"))
		})
	})
})

var _ = Describe("NotifierConfig", func() {
	It("should be enabled when Enabled is nil", func() {
		cfg := &config.NotifierConfig{}
		Expect(cfg.IsEnabled()).To(BeTrue())
	})

	It("should respect an explicit false", func() {
		enabled := false
		cfg := &config.TmuxNotifierConfig{NotifierConfig: config.NotifierConfig{Enabled: &enabled}}
		Expect(cfg.IsEnabled()).To(BeFalse())
	})
})

var _ = Describe("Config getters", func() {
	It("should create missing sections on demand", func() {
		cfg := &config.Config{}

		cfg.GetNotification().GetTmux().Success = "colour22"
		cfg.GetGlobal().TmuxPath = "/usr/bin/tmux"
		cfg.GetWatch().Command = "make test"

		Expect(cfg.Notification.Tmux.Success).To(Equal("colour22"))
		Expect(cfg.Global.TmuxPath).To(Equal("/usr/bin/tmux"))
		Expect(cfg.Watch.Command).To(Equal("make test"))
	})

	It("should report run_on_start as false by default", func() {
		var w *config.WatchConfig
		Expect(w.ShouldRunOnStart()).To(BeFalse())

		enabled := true
		w = &config.WatchConfig{RunOnStart: &enabled}
		Expect(w.ShouldRunOnStart()).To(BeTrue())
	})
})
