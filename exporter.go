// Package exporter turns a finished crawl into an offline markdown mirror
package exporter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/foomo/exporter/config"
	"github.com/foomo/exporter/normalize"
	"github.com/foomo/exporter/urlpath"
	"github.com/foomo/exporter/vo"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// log categories
const (
	CategoryStoreFileIgnored = "markdown-exporter-store-file-ignored"
	CategoryStoreFileError   = "markdown-exporter-store-file-error"
)

const extMarkdown = ".md"

var ErrNoBody = errors.New("no body stored for resource")

type Exporter struct {
	conf         *config.Config
	store        ResourceStore
	policy       Policy
	converter    Converter
	gate         *Gate
	resolver     *urlpath.Resolver
	pipeline     normalize.Pipeline
	hooks        []ContentHook
	initialHost  string
	contentTypes map[string]vo.ContentType // by urlKey, everything in the store
	logger       *zap.Logger
	metrics      *metrics
}

// NewExporter wires an export run. reg may be nil, when nobody is interested
// in metrics.
func NewExporter(
	conf *config.Config,
	store ResourceStore,
	policy Policy,
	converter Converter,
	logger *zap.Logger,
	reg prometheus.Registerer,
) (e *Exporter, err error) {
	if !conf.Enabled() {
		return nil, errors.New("export dir must not be empty")
	}
	queryRules, errQueryRules := config.ParseRules(conf.QueryReplace)
	if errQueryRules != nil {
		return nil, fmt.Errorf("query replace: %w", errQueryRules)
	}
	contentRules, errContentRules := config.ParseRules(conf.ContentReplace)
	if errContentRules != nil {
		return nil, fmt.Errorf("content replace: %w", errContentRules)
	}
	gate, errGate := NewGate(conf, policy)
	if errGate != nil {
		return nil, fmt.Errorf("store only urls: %w", errGate)
	}
	m, errMetrics := setupMetrics(reg)
	if errMetrics != nil {
		return nil, errMetrics
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	resolver := urlpath.NewResolver(queryRules)
	e = &Exporter{
		conf:      conf,
		store:     store,
		policy:    policy,
		converter: converter,
		gate:      gate,
		resolver:  resolver,
		pipeline: normalize.NewPipeline(normalize.Options{
			DisableImages: conf.DisableImages,
			DisableFiles:  conf.DisableFiles,
			Ignore:        policy.IgnorePatterns(),
		}),
		initialHost:  policy.InitialURL().Hostname(),
		contentTypes: map[string]vo.ContentType{},
		logger:       logger,
		metrics:      m,
	}
	for _, res := range store.All() {
		if u, errParse := url.Parse(res.URL); errParse == nil {
			e.contentTypes[urlKey(u)] = res.ContentType
		}
	}
	if len(contentRules) > 0 {
		e.AddHook(&ContentReplacer{Rules: contentRules})
	}
	e.AddHook(NewReferenceRewriter(resolver, policy, e.contentType))
	return e, nil
}

// AddHook hooks run in the order they were added
func (e *Exporter) AddHook(hook ContentHook) {
	e.hooks = append(e.hooks, hook)
}

// Export writes every accepted resource below the export dir. Only directory
// and write failures for typed files end the run, everything else is logged
// and skipped.
func (e *Exporter) Export(ctx context.Context) (summary vo.Summary, err error) {
	start := time.Now()
	summary.ExportDir = e.conf.ExportDir
	if errMkdir := os.MkdirAll(e.conf.ExportDir, 0755); errMkdir != nil {
		return summary, fmt.Errorf("create directory: %w", errMkdir)
	}
	// local path => scheme of the resource, that was written there
	written := map[string]string{}
	for _, res := range e.store.All() {
		if !e.gate.Exportable(res) || !e.gate.ShouldExport(res) {
			e.metrics.skippedTotal.WithLabelValues(reasonGate).Inc()
			continue
		}
		resStart := time.Now()
		ok, errExport := e.export(ctx, res, written)
		if errExport != nil {
			summary.Duration = time.Since(start)
			return summary, errExport
		}
		if ok {
			summary.Exported++
			e.metrics.resourcesTotal.WithLabelValues(res.ContentType.String()).Inc()
			e.metrics.durations.WithLabelValues(res.ContentType.String()).Observe(time.Since(resStart).Seconds())
		} else {
			summary.Skipped++
		}
	}
	summary.Duration = time.Since(start)
	e.logger.Info(
		"export finished",
		zap.String("export_dir", summary.ExportDir),
		zap.Duration("duration", summary.Duration),
		zap.Int("exported", summary.Exported),
		zap.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

func (e *Exporter) notice(category, msg, reason string, res vo.VisitedResource, fields ...zap.Field) {
	e.metrics.skippedTotal.WithLabelValues(reason).Inc()
	e.logger.Warn(msg, append([]zap.Field{
		zap.String("category", category),
		zap.String("url", res.URL),
	}, fields...)...)
}

// urlKey ignores fragments and the spelling of the host
func urlKey(u *url.URL) string {
	k := *u
	k.Fragment = ""
	k.RawFragment = ""
	k.Host = strings.ToLower(k.Host)
	if k.Path == "" && k.Opaque == "" {
		k.Path = "/"
	}
	return k.String()
}

func (e *Exporter) contentType(u *url.URL) (ct vo.ContentType, ok bool) {
	ct, ok = e.contentTypes[urlKey(u)]
	return ct, ok
}

// LocalPath is where a resource ends up below the export dir, documents are
// stored as .html until they are converted
func (e *Exporter) LocalPath(res vo.VisitedResource) (string, error) {
	u, errParse := url.Parse(res.URL)
	if errParse != nil {
		return "", errParse
	}
	return e.resolver.LocalPath(u, refKind(res.ContentType), e.initialHost), nil
}

func (e *Exporter) export(ctx context.Context, res vo.VisitedResource, written map[string]string) (ok bool, err error) {
	localPath, errPath := e.LocalPath(res)
	if errPath != nil {
		e.notice(CategoryStoreFileError, "could not parse url", reasonStore, res, zap.Error(errPath))
		return false, nil
	}
	u, _ := url.Parse(res.URL)
	scheme := strings.ToLower(u.Scheme)
	if previous, exists := written[localPath]; exists && previous == "https" && scheme == "http" {
		e.notice(
			CategoryStoreFileIgnored,
			"http resource would overwrite its https sibling",
			reasonConflict, res,
			zap.String("path", localPath),
		)
		return false, nil
	}
	body, hasBody := e.store.Body(res.UqID)
	if !hasBody {
		e.notice(CategoryStoreFileError, "could not load body", reasonBody, res, zap.Error(ErrNoBody))
		return false, nil
	}
	if isDocument(res.ContentType) {
		ok, err = e.exportDocument(ctx, res, u, localPath, body)
	} else {
		ok, err = e.storeFile(res, localPath, body)
	}
	if ok {
		written[localPath] = scheme
		e.logger.Debug("exported", zap.String("url", res.URL), zap.String("path", localPath))
	}
	return ok, err
}

func (e *Exporter) exportDocument(ctx context.Context, res vo.VisitedResource, u *url.URL, localPath, body string) (ok bool, err error) {
	for _, hook := range e.hooks {
		body = hook.ApplyContentChanges(body, res.ContentType, u, true)
	}
	ok, err = e.storeFile(res, localPath, body)
	if !ok || err != nil {
		return ok, err
	}
	protected, tables := normalize.ProtectTables(body)
	markdown, errConvert := e.converter.Convert(ctx, protected, e.conf.ExcludeSelectors)
	if errConvert != nil {
		e.notice(
			CategoryStoreFileError,
			"could not convert html to markdown",
			reasonConversion, res,
			zap.String("path", localPath),
			zap.Error(errConvert),
		)
		return false, nil
	}
	markdownPath := strings.TrimSuffix(localPath, urlpath.ExtHTML) + extMarkdown
	ok, err = e.storeFile(res, markdownPath, e.pipeline.Run(tables.Restore(markdown)))
	if !ok || err != nil {
		return ok, err
	}
	if errRemove := os.Remove(e.filename(localPath)); errRemove != nil && !os.IsNotExist(errRemove) {
		e.logger.Warn("could not remove intermediate html", zap.String("path", localPath), zap.Error(errRemove))
	}
	return true, nil
}

func (e *Exporter) filename(localPath string) string {
	return filepath.Join(e.conf.ExportDir, filepath.FromSlash(localPath))
}

// storeFile failing on a path with a known extension is fatal, unless store
// errors are ignored. Extensionless paths are usually generated image
// endpoints and never fatal.
func (e *Exporter) storeFile(res vo.VisitedResource, localPath, content string) (ok bool, err error) {
	filename := e.filename(localPath)
	if errMkdir := os.MkdirAll(filepath.Dir(filename), 0755); errMkdir != nil {
		return false, fmt.Errorf("create directory: %w", errMkdir)
	}
	errWrite := os.WriteFile(filename, []byte(content), 0644)
	if errWrite == nil {
		return true, nil
	}
	if urlpath.Extension(localPath) != "" && !e.conf.IgnoreStoreErrors {
		return false, fmt.Errorf("store file: %w", errWrite)
	}
	e.notice(
		CategoryStoreFileError,
		"could not store file",
		reasonStore, res,
		zap.String("path", localPath),
		zap.Error(errWrite),
	)
	return false, nil
}
