package notifier_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/smykla-skalski/tmuxflash/internal/exec"
	"github.com/smykla-skalski/tmuxflash/internal/notifier"
	"github.com/smykla-skalski/tmuxflash/internal/tmux"
)

var _ = Describe("TmuxNotifier", func() {
	var (
		ctrl        *gomock.Controller
		runner      *exec.MockCommandRunner
		client      *tmux.Client
		profile     notifier.Profile
		settings    notifier.TmuxSettings
		ctx         context.Context
		ok          *exec.CommandResult
		tmuxVersion string
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		runner = exec.NewMockCommandRunner(ctrl)
		client = tmux.NewClient(runner)
		profile = notifier.DefaultTmuxProfile()
		settings = notifier.TmuxSettings{}
		ctx = context.Background()
		ok = &exec.CommandResult{}
		tmuxVersion = "tmux 3.4\n"
	})

	JustBeforeEach(func() {
		// The version is asked at most once per notifier.
		runner.EXPECT().Run(ctx, "tmux", "-V").
			Return(&exec.CommandResult{Stdout: tmuxVersion}).
			MaxTimes(1)
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	newNotifier := func() *notifier.TmuxNotifier {
		return notifier.NewTmuxNotifier(client, profile, settings, nil)
	}

	expectSet := func(name, value string) *gomock.Call {
		return runner.EXPECT().Run(ctx, "tmux", "set-option", "-gq", name, value).Return(ok)
	}

	expectDisplay := func(args ...any) *gomock.Call {
		return runner.EXPECT().Run(ctx, "tmux", append([]any{"display-message"}, args...)...).Return(ok)
	}

	Context("on tmux 2.9 and later", func() {
		It("colors every location through style options and displays the titled message", func() {
			gomock.InOrder(
				expectSet("status-left-style", "bg=colour22"),
				expectSet("pane-active-border-style", "fg=colour22"),
				expectSet("pane-border-style", "fg=colour22"),
				expectSet("display-time", "100"),
				expectSet("message-style", "fg=black,bg=colour22"),
				expectDisplay("--", "proj - 3 tests passed"),
			)

			Expect(newNotifier().Notify(ctx, notifier.Notification{
				Title:   "proj",
				Message: "3 tests passed",
				Status:  notifier.StatusSuccess,
			})).To(Succeed())
		})

		It("uses the failure color for failed runs", func() {
			profile.DisplayMessage = false
			profile.ColorLocations = []string{"status-left-bg"}

			expectSet("status-left-style", "bg=colour124")

			Expect(newNotifier().Notify(ctx, notifier.Notification{Status: notifier.StatusFailed})).To(Succeed())
		})

		It("merges locations sharing a style option", func() {
			profile.DisplayMessage = false
			profile.ColorLocations = []string{"status-left-fg", "status-left-bg", "window-status-current-style"}

			gomock.InOrder(
				expectSet("status-left-style", "fg=colour166,bg=colour166"),
				expectSet("window-status-current-style", "bg=colour166"),
			)

			Expect(newNotifier().Notify(ctx, notifier.Notification{Status: notifier.StatusPending})).To(Succeed())
		})

		It("leaves colors untouched for notify", func() {
			gomock.InOrder(
				expectSet("display-time", "100"),
				expectSet("message-style", "fg=black"),
				expectDisplay("--", "hello"),
			)

			Expect(newNotifier().Notify(ctx, notifier.Notification{
				Message: "hello",
				Status:  notifier.StatusNotify,
			})).To(Succeed())
		})

		It("displays messages starting with a dash", func() {
			profile.DisplayTitle = false
			profile.ColorLocations = nil

			gomock.InOrder(
				expectSet("display-time", "100"),
				expectSet("message-style", "fg=black,bg=colour124"),
				expectDisplay("--", "-v flag broke"),
			)

			Expect(newNotifier().Notify(ctx, notifier.Notification{
				Title:   "proj",
				Message: "-v flag broke",
				Status:  notifier.StatusFailed,
			})).To(Succeed())
		})

		It("displays on every client when configured", func() {
			settings.DisplayOnAllClients = true
			profile.ColorLocations = nil

			gomock.InOrder(
				expectSet("display-time", "100"),
				expectSet("message-style", "fg=black,bg=colour166"),
				runner.EXPECT().Run(ctx, "tmux", "list-clients", "-F", "#{client_name}").
					Return(&exec.CommandResult{Stdout: "/dev/pts/1\n/dev/pts/2\n"}),
				expectDisplay("-c", "/dev/pts/1", "--", "Running make"),
				expectDisplay("-c", "/dev/pts/2", "--", "Running make"),
			)

			Expect(newNotifier().Notify(ctx, notifier.Notification{
				Message: "Running make",
				Status:  notifier.StatusPending,
			})).To(Succeed())
		})

		It("asks for the version once across notifications", func() {
			profile.DisplayMessage = false
			profile.ColorLocations = []string{"pane-border-fg"}

			gomock.InOrder(
				expectSet("pane-border-style", "fg=colour166"),
				expectSet("pane-border-style", "fg=colour22"),
			)

			n := newNotifier()
			Expect(n.Notify(ctx, notifier.Notification{Status: notifier.StatusPending})).To(Succeed())
			Expect(n.Notify(ctx, notifier.Notification{Status: notifier.StatusSuccess})).To(Succeed())
		})

		It("returns tmux failures after trying every location", func() {
			profile.DisplayMessage = false

			runner.EXPECT().Run(ctx, "tmux", "set-option", "-gq", "status-left-style", "bg=colour22").
				Return(&exec.CommandResult{ExitCode: 1, Stderr: "no server running"})
			expectSet("pane-active-border-style", "fg=colour22")
			expectSet("pane-border-style", "fg=colour22")

			err := newNotifier().Notify(ctx, notifier.Notification{Status: notifier.StatusSuccess})
			Expect(err).To(MatchError(tmux.ErrCommandFailed))
		})

		It("clamps display time to one millisecond", func() {
			profile.TimeoutSeconds = 0
			profile.ColorLocations = nil

			gomock.InOrder(
				expectSet("display-time", "1"),
				expectSet("message-style", "fg=black"),
				expectDisplay("--", "x"),
			)

			Expect(newNotifier().Notify(ctx, notifier.Notification{Message: "x", Status: notifier.StatusNotify})).
				To(Succeed())
		})

		It("saves and restores the style options", func() {
			for name, value := range map[string]string{
				"display-time":             "750",
				"message-style":            "bg=yellow,fg=black",
				"pane-active-border-style": "fg=green",
				"pane-border-style":        "default",
				"status-left-style":        "",
			} {
				runner.EXPECT().Run(ctx, "tmux", "show-options", "-gqv", name).
					Return(&exec.CommandResult{Stdout: value + "\n"})
			}

			n := newNotifier()
			Expect(n.TurnOn(ctx)).To(Succeed())

			gomock.InOrder(
				expectSet("display-time", "750"),
				expectSet("message-style", "bg=yellow,fg=black"),
				expectSet("pane-active-border-style", "fg=green"),
				expectSet("pane-border-style", "default"),
				runner.EXPECT().Run(ctx, "tmux", "set-option", "-gqu", "status-left-style").Return(ok),
			)

			Expect(n.TurnOff(ctx)).To(Succeed())
		})
	})

	Context("when the tmux version is unknown", func() {
		BeforeEach(func() {
			tmuxVersion = "tmux master\n"
		})

		It("uses style options", func() {
			profile.DisplayMessage = false
			profile.ColorLocations = []string{"status-left-bg"}

			expectSet("status-left-style", "bg=colour22")

			Expect(newNotifier().Notify(ctx, notifier.Notification{Status: notifier.StatusSuccess})).To(Succeed())
		})
	})

	Context("on tmux before 2.9", func() {
		BeforeEach(func() {
			tmuxVersion = "tmux 2.8\n"
		})

		It("sets the color options directly", func() {
			gomock.InOrder(
				expectSet("status-left-bg", "colour22"),
				expectSet("pane-active-border-fg", "colour22"),
				expectSet("pane-border-fg", "colour22"),
				expectSet("display-time", "100"),
				expectSet("message-fg", "black"),
				expectSet("message-bg", "colour22"),
				expectDisplay("--", "proj - 3 tests passed"),
			)

			Expect(newNotifier().Notify(ctx, notifier.Notification{
				Title:   "proj",
				Message: "3 tests passed",
				Status:  notifier.StatusSuccess,
			})).To(Succeed())
		})

		It("restores set options and unsets the rest", func() {
			profile.ColorLocations = []string{"pane-border-fg"}

			runner.EXPECT().Run(ctx, "tmux", "show-options", "-gqv", "pane-border-fg").
				Return(&exec.CommandResult{Stdout: "green\n"})

			for _, name := range []string{"display-time", "message-bg", "message-fg"} {
				runner.EXPECT().Run(ctx, "tmux", "show-options", "-gqv", name).
					Return(&exec.CommandResult{})
			}

			n := newNotifier()
			Expect(n.TurnOn(ctx)).To(Succeed())

			gomock.InOrder(
				runner.EXPECT().Run(ctx, "tmux", "set-option", "-gqu", "display-time").Return(ok),
				runner.EXPECT().Run(ctx, "tmux", "set-option", "-gqu", "message-bg").Return(ok),
				runner.EXPECT().Run(ctx, "tmux", "set-option", "-gqu", "message-fg").Return(ok),
				expectSet("pane-border-fg", "green"),
			)

			Expect(n.TurnOff(ctx)).To(Succeed())
		})
	})

	DescribeTable("MessageText",
		func(displayTitle bool, separator string, n notifier.Notification, expected string) {
			profile.DisplayTitle = displayTitle
			settings.LineSeparator = separator

			Expect(newNotifier().MessageText(n)).To(Equal(expected))
		},
		Entry("title and message", true, "",
			notifier.Notification{Title: "proj", Message: "ok"}, "proj - ok"),
		Entry("title hidden", false, "",
			notifier.Notification{Title: "proj", Message: "ok"}, "ok"),
		Entry("title only", true, "",
			notifier.Notification{Title: "proj"}, "proj"),
		Entry("multi-line", true, "",
			notifier.Notification{Title: "t", Message: "a\n\n b \nc"}, "t - a - b - c"),
		Entry("custom separator", false, " | ",
			notifier.Notification{Message: "a\nb"}, "a | b"),
		Entry("escapes formats", false, "",
			notifier.Notification{Message: "issue #12"}, "issue ##12"),
	)

	It("does nothing on TurnOff without TurnOn", func() {
		Expect(newNotifier().TurnOff(ctx)).To(Succeed())
	})

	It("is built by the tmux factory", func() {
		n, err := notifier.NewTmuxFactory(client, settings, nil)(profile)

		Expect(err).NotTo(HaveOccurred())
		Expect(n.Name()).To(Equal("tmux"))
		Expect(n.(*notifier.TmuxNotifier).Profile()).To(Equal(profile))
	})
})
