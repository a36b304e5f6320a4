package notifier_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/tmuxflash/internal/notifier"
	"github.com/smykla-skalski/tmuxflash/pkg/config"
)

var _ = Describe("Profile", func() {
	It("renders options with the config keys", func() {
		Expect(notifier.DefaultTmuxProfile().Options()).To(Equal(map[string]any{
			"timeout":               0.1,
			"display_message":       true,
			"display_title":         true,
			"default_message_color": "black",
			"success":               "colour22",
			"failure":               "colour124",
			"pending":               "colour166",
			"color_location":        []string{"status-left-bg", "pane-active-border-fg", "pane-border-fg"},
		}))
	})

	It("hands out copies of the color locations", func() {
		p := notifier.DefaultTmuxProfile()
		locations := p.Locations()
		locations[0] = "changed"

		clone := p.Clone()
		clone.ColorLocations[1] = "changed"

		Expect(p.ColorLocations).To(Equal(notifier.DefaultTmuxProfile().ColorLocations))
	})

	DescribeTable("ColorFor",
		func(status notifier.Status, color string, ok bool) {
			c, found := notifier.DefaultTmuxProfile().ColorFor(status)
			Expect(found).To(Equal(ok))
			Expect(c).To(Equal(color))
		},
		Entry("success", notifier.StatusSuccess, "colour22", true),
		Entry("failed", notifier.StatusFailed, "colour124", true),
		Entry("pending", notifier.StatusPending, "colour166", true),
		Entry("notify", notifier.StatusNotify, "", false),
	)

	Describe("ProfileFromConfig", func() {
		It("returns defaults for nil config", func() {
			Expect(notifier.ProfileFromConfig(nil)).To(Equal(notifier.DefaultTmuxProfile()))
		})

		It("overrides set fields only", func() {
			timeout := 2.5
			displayTitle := false

			p := notifier.ProfileFromConfig(&config.TmuxNotifierConfig{
				Timeout:       &timeout,
				DisplayTitle:  &displayTitle,
				Failure:       "red",
				ColorLocation: []string{"status-right-bg"},
			})

			Expect(p.TimeoutSeconds).To(Equal(2.5))
			Expect(p.DisplayTitle).To(BeFalse())
			Expect(p.DisplayMessage).To(BeTrue())
			Expect(p.FailureColor).To(Equal("red"))
			Expect(p.SuccessColor).To(Equal("colour22"))
			Expect(p.ColorLocations).To(Equal([]string{"status-right-bg"}))
		})

		It("allows an empty color location list", func() {
			p := notifier.ProfileFromConfig(&config.TmuxNotifierConfig{ColorLocation: []string{}})

			Expect(p.ColorLocations).To(BeEmpty())
		})
	})
})

var _ = Describe("ParseStatus", func() {
	DescribeTable("valid names",
		func(input string, expected notifier.Status) {
			status, err := notifier.ParseStatus(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(expected))
		},
		Entry("pending", "pending", notifier.StatusPending),
		Entry("success upper", "SUCCESS", notifier.StatusSuccess),
		Entry("failed", "failed", notifier.StatusFailed),
		Entry("failure alias", "Failure", notifier.StatusFailed),
		Entry("notify padded", " notify ", notifier.StatusNotify),
	)

	It("rejects unknown names", func() {
		_, err := notifier.ParseStatus("broken")
		Expect(err).To(MatchError(notifier.ErrInvalidStatus))
	})
})
