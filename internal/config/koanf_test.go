package config

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/tmuxflash/internal/notifier"
)

// helper to create a loader with separate global and work dirs.
func newTestLoader() (loader *KoanfLoader, globalPath, workDir string) {
	globalDir := GinkgoT().TempDir()
	workDir = GinkgoT().TempDir()
	globalPath = filepath.Join(globalDir, "tmuxflash", "config.toml")

	return NewKoanfLoaderWithPaths(globalPath, workDir), globalPath, workDir
}

func writeFile(path, content string) {
	Expect(os.MkdirAll(filepath.Dir(path), 0o755)).To(Succeed())
	Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
}

var _ = Describe("KoanfLoader", func() {
	var (
		loader     *KoanfLoader
		globalPath string
		workDir    string
	)

	BeforeEach(func() {
		loader, globalPath, workDir = newTestLoader()
	})

	Describe("defaults", func() {
		It("loads the default tmux profile without any files", func() {
			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())

			tmuxCfg := cfg.Notification.Tmux
			Expect(tmuxCfg.IsEnabled()).To(BeTrue())
			Expect(notifier.ProfileFromConfig(tmuxCfg)).To(Equal(notifier.DefaultTmuxProfile()))
			Expect(*tmuxCfg.DisplayOnAllClients).To(BeFalse())
			Expect(tmuxCfg.LineSeparator).To(Equal(" - "))
		})

		It("loads global and watch defaults", func() {
			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfg.Version).To(Equal(1))
			Expect(cfg.Global.DefaultTimeout.ToDuration()).To(Equal(10 * time.Minute))
			Expect(cfg.Global.TmuxPath).To(Equal("tmux"))
			Expect(cfg.Watch.Paths).To(Equal([]string{"."}))
			Expect(cfg.Watch.Exclude).To(Equal(DefaultExcludes))
			Expect(cfg.Watch.Debounce.ToDuration()).To(Equal(300 * time.Millisecond))
			Expect(cfg.Watch.ShouldRunOnStart()).To(BeFalse())
			Expect(cfg.Notification.Bell.IsEnabled()).To(BeFalse())
		})

		It("matches DefaultConfig for the tmux section", func() {
			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfg.Notification.Tmux).To(Equal(DefaultTmuxNotifierConfig()))
		})
	})

	Describe("files", func() {
		It("reads the global config", func() {
			writeFile(globalPath, `[notification.tmux]
success = "green"
`)

			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Notification.Tmux.Success).To(Equal("green"))
			Expect(cfg.Notification.Tmux.Failure).To(Equal("colour124"))
			Expect(loader.HasGlobalConfig()).To(BeTrue())
		})

		It("lets the project config override the global config", func() {
			writeFile(globalPath, `[notification.tmux]
success = "green"
pending = "yellow"
`)
			writeFile(filepath.Join(workDir, ProjectConfigDir, ProjectConfigFile), `[notification.tmux]
success = "blue"
`)

			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Notification.Tmux.Success).To(Equal("blue"))
			Expect(cfg.Notification.Tmux.Pending).To(Equal("yellow"))
		})

		It("finds the alternative project file", func() {
			path := filepath.Join(workDir, ProjectConfigFileAlt)
			writeFile(path, `[watch]
command = "go test ./..."
`)

			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Watch.Command).To(Equal("go test ./..."))
			Expect(loader.FindProjectConfigPath()).To(Equal(path))
		})

		It("reads an explicit project file", func() {
			path := filepath.Join(workDir, "custom.toml")
			writeFile(path, `[notification.tmux]
timeout = 1.5
color_location = ["status-right-bg"]
`)

			cfg, err := loader.WithProjectConfig(path).Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(*cfg.Notification.Tmux.Timeout).To(Equal(1.5))
			Expect(cfg.Notification.Tmux.ColorLocation).To(Equal([]string{"status-right-bg"}))
		})

		It("fails for a missing explicit project file", func() {
			_, err := loader.WithProjectConfig(filepath.Join(workDir, "nope.toml")).Load(nil)

			Expect(err).To(MatchError(ErrConfigNotFound))
		})

		It("rejects world-writable files", func() {
			writeFile(globalPath, "version = 1\n")
			Expect(os.Chmod(globalPath, 0o666)).To(Succeed())

			_, err := loader.Load(nil)
			Expect(err).To(MatchError(ErrInvalidPermissions))
		})

		It("reports invalid values", func() {
			writeFile(globalPath, `[notification.tmux]
timeout = -1.0
`)

			_, err := loader.Load(nil)
			Expect(err).To(MatchError(ErrInvalidConfig))
		})
	})

	Describe("environment", func() {
		It("overrides files", func() {
			writeFile(globalPath, `[notification.tmux]
success = "green"
`)
			GinkgoT().Setenv("TMUXFLASH_NOTIFICATION__TMUX__SUCCESS", "cyan")
			GinkgoT().Setenv("TMUXFLASH_NOTIFICATION__TMUX__DISPLAY_TITLE", "false")

			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Notification.Tmux.Success).To(Equal("cyan"))
			Expect(*cfg.Notification.Tmux.DisplayTitle).To(BeFalse())
		})

		It("splits list values on commas", func() {
			GinkgoT().Setenv("TMUXFLASH_NOTIFICATION__TMUX__COLOR_LOCATION", "status-left-bg,status-right-bg")

			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Notification.Tmux.ColorLocation).To(Equal([]string{"status-left-bg", "status-right-bg"}))
		})

		It("skips variables without a level separator", func() {
			GinkgoT().Setenv("TMUXFLASH_LOG_FILE", "/tmp/x.log")

			_, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("flags", func() {
		It("take precedence over everything", func() {
			GinkgoT().Setenv("TMUXFLASH_WATCH__COMMAND", "make")

			cfg, err := loader.Load(map[string]any{
				"command":      "go test ./...",
				"debounce":     "1s",
				"run-on-start": true,
				"bell":         true,
				"tmux-path":    "/opt/tmux",
				"timeout":      "30s",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(cfg.Watch.Command).To(Equal("go test ./..."))
			Expect(cfg.Watch.Debounce.ToDuration()).To(Equal(time.Second))
			Expect(cfg.Watch.ShouldRunOnStart()).To(BeTrue())
			Expect(cfg.Notification.Bell.IsEnabled()).To(BeTrue())
			Expect(cfg.Global.TmuxPath).To(Equal("/opt/tmux"))
			Expect(cfg.Global.DefaultTimeout.ToDuration()).To(Equal(30 * time.Second))
		})

		It("ignores empty string flags", func() {
			cfg, err := loader.Load(map[string]any{"command": "", "tmux-path": ""})
			Expect(err).NotTo(HaveOccurred())

			Expect(cfg.Watch.Command).To(BeEmpty())
			Expect(cfg.Global.TmuxPath).To(Equal("tmux"))
		})
	})

	It("lists project config candidates", func() {
		Expect(loader.ProjectConfigPaths()).To(Equal([]string{
			filepath.Join(workDir, ".tmuxflash", "config.toml"),
			filepath.Join(workDir, ".tmuxflash.toml"),
		}))
		Expect(loader.GlobalConfigPath()).To(Equal(globalPath))
		Expect(loader.HasGlobalConfig()).To(BeFalse())
	})
})
