package notifier_test

import (
	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/tmuxflash/internal/notifier"
	"github.com/smykla-skalski/tmuxflash/pkg/logger"
)

type registration struct {
	kind    notifier.Kind
	profile notifier.Profile
}

type recordingRegistrar struct {
	calls []registration
	err   error
}

func (r *recordingRegistrar) Register(kind notifier.Kind, profile notifier.Profile) error {
	r.calls = append(r.calls, registration{kind: kind, profile: profile})

	return r.err
}

var _ = Describe("Configurator", func() {
	var (
		registrar    *recordingRegistrar
		configurator *notifier.Configurator
	)

	BeforeEach(func() {
		registrar = &recordingRegistrar{}
		configurator = notifier.NewTmuxConfigurator(registrar, logger.NewNoOpLogger())
	})

	Context("outside tmux", func() {
		It("registers nothing when TMUX is absent", func() {
			profile, ok := configurator.Configure(notifier.MapEnv{})

			Expect(ok).To(BeFalse())
			Expect(profile).To(Equal(notifier.Profile{}))
			Expect(registrar.calls).To(BeEmpty())
		})

		It("registers nothing when TMUX is empty", func() {
			_, ok := configurator.Configure(notifier.MapEnv{"TMUX": ""})

			Expect(ok).To(BeFalse())
			Expect(registrar.calls).To(BeEmpty())
		})

		It("ignores unrelated variables", func() {
			_, ok := configurator.Configure(notifier.MapEnv{"TERM": "screen-256color", "STY": "1234.pts"})

			Expect(ok).To(BeFalse())
			Expect(registrar.calls).To(BeEmpty())
		})

		It("treats a nil environment as outside", func() {
			_, ok := configurator.Configure(nil)

			Expect(ok).To(BeFalse())
			Expect(registrar.calls).To(BeEmpty())
		})
	})

	Context("inside tmux", func() {
		env := notifier.MapEnv{"TMUX": "/tmp/tmux-1000/default,1234,0"}

		It("registers the tmux notifier once with the default profile", func() {
			profile, ok := configurator.Configure(env)

			Expect(ok).To(BeTrue())
			Expect(registrar.calls).To(HaveLen(1))
			Expect(registrar.calls[0].kind).To(Equal(notifier.KindTmux))
			Expect(registrar.calls[0].profile).To(Equal(notifier.DefaultTmuxProfile()))
			Expect(profile).To(Equal(notifier.DefaultTmuxProfile()))
		})

		It("registers exactly the documented values", func() {
			configurator.Configure(env)

			p := registrar.calls[0].profile
			Expect(p.TimeoutSeconds).To(Equal(0.1))
			Expect(p.DisplayMessage).To(BeTrue())
			Expect(p.DisplayTitle).To(BeTrue())
			Expect(p.DefaultMessageColor).To(Equal("black"))
			Expect(p.SuccessColor).To(Equal("colour22"))
			Expect(p.FailureColor).To(Equal("colour124"))
			Expect(p.PendingColor).To(Equal("colour166"))
			Expect(p.ColorLocations).To(Equal([]string{
				"status-left-bg",
				"pane-active-border-fg",
				"pane-border-fg",
			}))
		})

		It("produces identical registrations on repeated calls", func() {
			configurator.Configure(env)
			configurator.Configure(env)

			Expect(registrar.calls).To(HaveLen(2))
			Expect(registrar.calls[1]).To(Equal(registrar.calls[0]))
		})

		It("does not share state between registrations", func() {
			configurator.Configure(env)
			registrar.calls[0].profile.ColorLocations[0] = "mutated"
			configurator.Configure(env)

			Expect(registrar.calls[1].profile.ColorLocations[0]).To(Equal("status-left-bg"))
		})

		It("swallows registrar errors", func() {
			registrar.err = errors.New("registry closed")

			profile, ok := configurator.Configure(env)

			Expect(ok).To(BeTrue())
			Expect(profile).To(Equal(notifier.DefaultTmuxProfile()))
			Expect(registrar.calls).To(HaveLen(1))
		})

		It("registers a custom profile", func() {
			custom := notifier.DefaultTmuxProfile()
			custom.SuccessColor = "green"
			c := notifier.NewConfigurator(registrar, custom, nil)

			c.Configure(env)

			Expect(registrar.calls[0].profile.SuccessColor).To(Equal("green"))
		})
	})

	It("accepts a RegistrarFunc", func() {
		var kinds []notifier.Kind

		c := notifier.NewTmuxConfigurator(notifier.RegistrarFunc(
			func(kind notifier.Kind, _ notifier.Profile) error {
				kinds = append(kinds, kind)

				return nil
			},
		), nil)

		c.Configure(notifier.MapEnv{"TMUX": "x"})

		Expect(kinds).To(Equal([]notifier.Kind{notifier.KindTmux}))
	})

	It("tolerates a nil registrar", func() {
		c := notifier.NewTmuxConfigurator(nil, nil)

		var (
			profile notifier.Profile
			ok      bool
		)

		Expect(func() {
			profile, ok = c.Configure(notifier.MapEnv{"TMUX": "/tmp/tmux-1000/default,1234,0"})
		}).NotTo(Panic())
		Expect(ok).To(BeTrue())
		Expect(profile).To(Equal(notifier.DefaultTmuxProfile()))
	})
})

var _ = Describe("InMultiplexerSession", func() {
	DescribeTable("detects tmux",
		func(env notifier.MapEnv, expected bool) {
			Expect(notifier.InMultiplexerSession(env)).To(Equal(expected))
		},
		Entry("absent", notifier.MapEnv{}, false),
		Entry("empty", notifier.MapEnv{"TMUX": ""}, false),
		Entry("socket path", notifier.MapEnv{"TMUX": "/tmp/tmux-1000/default,1,0"}, true),
		Entry("any non-empty value", notifier.MapEnv{"TMUX": "1"}, true),
	)

	It("reads the process environment", func() {
		GinkgoT().Setenv("TMUX", "/tmp/tmux-1000/default,1,0")

		Expect(notifier.InMultiplexerSession(notifier.ProcessEnv{})).To(BeTrue())
	})
})
