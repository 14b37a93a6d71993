package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wgalyen/kimchi/internal/aggregator"
	"github.com/wgalyen/kimchi/internal/canonicalize"
	"github.com/wgalyen/kimchi/internal/checker"
	"github.com/wgalyen/kimchi/internal/config"
	"github.com/wgalyen/kimchi/internal/domain"
	"github.com/wgalyen/kimchi/internal/extractor"
	"github.com/wgalyen/kimchi/internal/githubclient"
	"github.com/wgalyen/kimchi/internal/httpclient"
	"github.com/wgalyen/kimchi/internal/mailprobe"
	"github.com/wgalyen/kimchi/internal/resolver"
	"github.com/wgalyen/kimchi/internal/utils"
	"github.com/wgalyen/kimchi/pkg/version"
)

var (
	cfgFile string
	log     *utils.Logger
)

var rootCmd = &cobra.Command{
	Use:     "kimchi [inputs...]",
	Short:   "Check links across Markdown, HTML and plaintext sources",
	Long:    "Kimchi resolves one or more inputs (files, globs, a URL, or stdin via \"-\"), extracts every link they contain, and checks each one over HTTP, SMTP, GitHub's API or the local filesystem.",
	Version: version.Short(),
	Args:    cobra.ArbitraryArgs,
	RunE:    run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", config.DefaultConfigPath, "config file path")

	flags.BoolP("progress", "p", false, "show a progress bar")
	flags.BoolP("verbose", "v", false, "verbose logging")
	flags.BoolP("insecure", "i", false, "disable TLS certificate verification")
	flags.Bool("skip-missing", false, "skip missing inputs instead of failing")
	flags.Bool("glob-ignore-case", false, "case-insensitive glob matching")
	flags.Bool("exclude-private", false, "exclude private IP ranges")
	flags.Bool("exclude-link-local", false, "exclude link-local IP ranges")
	flags.Bool("exclude-loopback", false, "exclude loopback addresses")
	flags.BoolP("exclude-all-private", "E", false, "exclude private, link-local and loopback addresses")
	flags.StringSliceP("accept", "a", nil, "additional HTTP status codes to accept as Ok")
	flags.StringP("base-url", "b", "", "base URL to resolve relative links in stdin input against")
	flags.String("basic-auth", "", "HTTP basic auth as user:pass")
	flags.StringSlice("exclude", nil, "regex patterns to exclude from checking")
	flags.StringSlice("include", nil, "regex patterns; when set, only matches are checked")
	flags.String("github-token", "", "GitHub API token for repository existence checks (env GITHUB_TOKEN)")
	flags.StringSliceP("headers", "H", nil, "extra request headers as Key:Value")
	flags.Uint32("max-concurrency", config.DefaultMaxConcurrency, "maximum concurrent checks")
	flags.Uint32P("max-redirects", "m", config.DefaultMaxRedirects, "maximum redirects to follow per link")
	flags.StringP("method", "X", "GET", "HTTP method to use")
	flags.StringP("scheme", "s", "", "require this URL scheme; others are excluded")
	flags.IntP("threads", "T", 0, "alias for --max-concurrency")
	flags.Uint32P("timeout", "t", config.DefaultTimeoutSeconds, "per-request timeout in seconds")
	flags.StringP("user-agent", "u", "", "User-Agent header to send")

	rootCmd.AddCommand(doctorCmd)
}

func run(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	verbose, _ := flags.GetBool("verbose")
	level := "info"
	if verbose {
		level = "debug"
	}
	log = utils.NewLogger(utils.LoggerOptions{Level: level, Format: "pretty", Verbose: verbose})

	v := viper.New()

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg, flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputs := args
	if len(inputs) == 0 {
		inputs = []string{"README.md"}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("shutting down, finishing in-flight checks...")
		cancel()
	}()

	web, err := httpclient.New(httpclient.Options{TimeoutSeconds: cfg.TimeoutSeconds, InsecureTLS: cfg.AllowInsecureTLS})
	if err != nil {
		return fmt.Errorf("failed to build http client: %w", err)
	}
	gh := githubclient.New(web, cfg.GithubToken)
	mail := mailprobe.New()

	res := resolver.New(web, cfg.GlobIgnoreCase, cfg.SkipMissingInputs, cfg.BaseURL)

	agg := aggregator.New()
	var allURIs []domain.Uri

	for _, token := range inputs {
		result := res.Resolve(ctx, token)
		if result.Err != nil {
			return result.Err
		}
		if result.Skipped != "" {
			agg.AddSkippedInput(result.Skipped)
			log.Warn().Str("input", token).Msg(result.Skipped)
			continue
		}
		for _, src := range result.Sources {
			links, extractErr := extractor.Extract(src)
			if extractErr != nil {
				log.Warn().Err(extractErr).Str("input", token).Msg("extraction failed, skipping source")
				continue
			}
			for _, link := range links {
				canon := canonicalize.Canonicalize(link)
				if canon.Skip != "" {
					continue
				}
				allURIs = append(allURIs, canon.Uri)
			}
		}
	}

	var progress domain.ProgressReporter
	if showProgress, _ := flags.GetBool("progress"); showProgress {
		progress = utils.NewBarReporter(utils.DescChecking)
	}

	c := checker.New(web, gh, mail, cfg, progress)
	responses := c.CheckAll(ctx, allURIs)
	agg.AddResponses(responses)

	report := agg.Build(time.Now())
	printReport(report)

	os.Exit(report.ExitCode())
	return nil
}

// applyFlagOverrides layers explicitly-passed CLI flags on top of the
// defaults/file/env-merged CheckerConfig, the last step of spec §6's
// defaults → file → env → CLI precedence. Only flags the user actually
// set (flags.Changed) override the merged config; viper's BindPFlag
// can't express that distinction since every flag always has a value.
func applyFlagOverrides(cfg *config.CheckerConfig, flags *pflag.FlagSet) {
	if flags.Changed("insecure") {
		cfg.AllowInsecureTLS, _ = flags.GetBool("insecure")
	}
	if flags.Changed("skip-missing") {
		cfg.SkipMissingInputs, _ = flags.GetBool("skip-missing")
	}
	if flags.Changed("glob-ignore-case") {
		cfg.GlobIgnoreCase, _ = flags.GetBool("glob-ignore-case")
	}
	if flags.Changed("exclude-private") {
		cfg.ExcludePrivate, _ = flags.GetBool("exclude-private")
	}
	if flags.Changed("exclude-link-local") {
		cfg.ExcludeLinkLocal, _ = flags.GetBool("exclude-link-local")
	}
	if flags.Changed("exclude-loopback") {
		cfg.ExcludeLoopback, _ = flags.GetBool("exclude-loopback")
	}
	if all, _ := flags.GetBool("exclude-all-private"); all {
		cfg.ExcludePrivate, cfg.ExcludeLinkLocal, cfg.ExcludeLoopback = true, true, true
	}
	if flags.Changed("base-url") {
		cfg.BaseURL, _ = flags.GetString("base-url")
	}
	if flags.Changed("exclude") {
		cfg.Exclude, _ = flags.GetStringSlice("exclude")
	}
	if flags.Changed("include") {
		cfg.Include, _ = flags.GetStringSlice("include")
	}
	if flags.Changed("github-token") {
		cfg.GithubToken, _ = flags.GetString("github-token")
	}
	if flags.Changed("max-concurrency") {
		n, _ := flags.GetUint32("max-concurrency")
		cfg.MaxConcurrency = n
	}
	if flags.Changed("threads") {
		n, _ := flags.GetInt("threads")
		if n > 0 {
			cfg.MaxConcurrency = uint32(n)
		}
	}
	if flags.Changed("max-redirects") {
		cfg.MaxRedirects, _ = flags.GetUint32("max-redirects")
	}
	if flags.Changed("method") {
		m, _ := flags.GetString("method")
		cfg.Method = domain.Method(strings.ToUpper(m))
	}
	if flags.Changed("scheme") {
		cfg.Scheme, _ = flags.GetString("scheme")
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds, _ = flags.GetUint32("timeout")
	}
	if flags.Changed("user-agent") {
		cfg.UserAgent, _ = flags.GetString("user-agent")
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("accept") {
		raw, _ := flags.GetStringSlice("accept")
		cfg.AcceptedStatus = parseStatusCodes(raw)
	}
	if flags.Changed("basic-auth") {
		raw, _ := flags.GetString("basic-auth")
		if user, pass, ok := strings.Cut(raw, ":"); ok {
			cfg.BasicAuth = &config.BasicAuth{User: user, Pass: pass}
		}
	}
	if flags.Changed("headers") {
		raw, _ := flags.GetStringSlice("headers")
		if cfg.Headers == nil {
			cfg.Headers = map[string]string{}
		}
		for _, h := range raw {
			if k, val, ok := strings.Cut(h, ":"); ok {
				cfg.Headers[strings.TrimSpace(k)] = strings.TrimSpace(val)
			}
		}
	}
}

func parseStatusCodes(raw []string) []uint16 {
	codes := make([]uint16, 0, len(raw))
	for _, s := range raw {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 100 || n > 599 {
			continue
		}
		codes = append(codes, uint16(n))
	}
	return codes
}
