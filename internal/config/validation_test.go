package config

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/tmuxflash/pkg/config"
)

var _ = Describe("Validator", func() {
	var (
		validator *Validator
		cfg       *config.Config
	)

	BeforeEach(func() {
		validator = NewValidator()
		cfg = DefaultConfig()
	})

	It("accepts the defaults", func() {
		Expect(validator.Validate(cfg)).To(Succeed())
	})

	It("rejects a nil config", func() {
		Expect(validator.Validate(nil)).To(MatchError(ErrInvalidConfig))
	})

	It("accepts sections that are missing", func() {
		Expect(validator.Validate(&config.Config{})).To(Succeed())
	})

	Describe("tmux notifier", func() {
		It("rejects a negative timeout", func() {
			timeout := -0.5
			cfg.Notification.Tmux.Timeout = &timeout

			err := validator.Validate(cfg)
			Expect(err).To(MatchError(ErrInvalidConfig))
			Expect(err).To(MatchError(ErrInvalidOption))
		})

		It("accepts a zero timeout", func() {
			timeout := 0.0
			cfg.Notification.Tmux.Timeout = &timeout

			Expect(validator.Validate(cfg)).To(Succeed())
		})

		It("rejects empty colors", func() {
			cfg.Notification.Tmux.Success = " "

			Expect(validator.Validate(cfg)).To(MatchError(ErrEmptyValue))
		})

		It("rejects colors with whitespace", func() {
			cfg.Notification.Tmux.Pending = "bright red"

			Expect(validator.Validate(cfg)).To(MatchError(ErrInvalidOption))
		})

		DescribeTable("color locations",
			func(location string, valid bool) {
				cfg.Notification.Tmux.ColorLocation = []string{location}

				err := validator.Validate(cfg)
				if valid {
					Expect(err).NotTo(HaveOccurred())
				} else {
					Expect(err).To(MatchError(ErrInvalidOption))
				}
			},
			Entry("status-left-bg", "status-left-bg", true),
			Entry("pane-active-border-fg", "pane-active-border-fg", true),
			Entry("window-status-current-style", "window-status-current-style", true),
			Entry("upper case", "Status-Left-BG", false),
			Entry("trailing dash", "status-", false),
			Entry("injection", "status-left-bg;kill-server", false),
		)
	})

	Describe("watch", func() {
		It("rejects invalid patterns", func() {
			cfg.Watch.Include = []string{"src/[a-"}

			Expect(validator.Validate(cfg)).To(MatchError(ErrInvalidPattern))
		})

		It("rejects empty paths", func() {
			cfg.Watch.Paths = []string{""}

			Expect(validator.Validate(cfg)).To(MatchError(ErrEmptyValue))
		})

		It("rejects a negative debounce", func() {
			cfg.Watch.Debounce = config.Duration(-time.Second)

			err := validator.Validate(cfg)
			Expect(err).To(MatchError(ErrInvalidOption))
			Expect(err).To(MatchError(ContainSubstring("debounce must be non-negative, got -1s")))
		})
	})

	It("reports every failure", func() {
		cfg.Notification.Tmux.Success = ""
		cfg.Watch.Exclude = []string{"[["}

		err := validator.Validate(cfg)
		Expect(err).To(MatchError(ContainSubstring("2 error(s)")))
	})
})
