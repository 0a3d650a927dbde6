package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"confedit/internal/cli/output"
	"confedit/internal/cli/progress"
	"confedit/internal/core"
	"confedit/internal/ports"

	"golang.org/x/sync/errgroup"
)

const DefaultApplyConcurrency = 4

type ApplyCommandHandler struct {
	scriptLoader *core.ScriptLoader
	editor       *core.FileEditor
	fileSystem   ports.FileSystem
	differ       ports.Differ
	logger       *slog.Logger
}

func ProvideApplyCommandHandler(
	scriptLoader *core.ScriptLoader,
	editor *core.FileEditor,
	fileSystem ports.FileSystem,
	differ ports.Differ,
	logger *slog.Logger,
) ApplyCommandHandler {
	return ApplyCommandHandler{
		scriptLoader: scriptLoader,
		editor:       editor,
		fileSystem:   fileSystem,
		differ:       differ,
		logger:       logger,
	}
}

// targetGroup holds targets that share a file. They run sequentially in
// script order; separate groups may run concurrently.
type targetGroup struct {
	name    string
	targets []int
}

type targetOutcome struct {
	target  core.ScriptTarget
	result  core.Result
	deleted bool
}

func (h *ApplyCommandHandler) Handle(ctx context.Context, scripts []string, dryRun bool, concurrency int) error {
	if len(scripts) == 0 {
		return errors.New("no update scripts given")
	}
	if concurrency < 1 {
		concurrency = 1
	}

	var targets []core.ScriptTarget
	for _, path := range scripts {
		script, err := h.scriptLoader.Load(path)
		if err != nil {
			return err
		}
		targets = append(targets, script.Targets...)
	}

	groups, err := h.groupTargets(targets)
	if err != nil {
		return err
	}
	h.logger.Debug("planned update scripts", "targets", len(targets), "groups", len(groups), "concurrency", concurrency)

	startTime := time.Now()
	output.PrintHeader("Applying update scripts")
	fmt.Fprintln(output.Stdout)

	names := make([]string, len(groups))
	for i, group := range groups {
		names[i] = group.name
	}
	tracker := progress.NewConcurrentTracker(names, "Applying")
	tracker.Start()

	outcomes := make([]targetOutcome, len(targets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, group := range groups {
		g.Go(func() error {
			tracker.StartItem(i)
			err := h.applyGroup(ctx, group, targets, outcomes, dryRun)
			tracker.CompleteItem(i, err)
			return err
		})
	}

	applyErr := g.Wait()
	tracker.Stop()

	if applyErr != nil {
		output.PrintWarning(tracker.Summary())
		return applyErr
	}

	fmt.Fprintln(output.Stdout)
	for _, outcome := range outcomes {
		switch {
		case outcome.deleted && dryRun:
			output.PrintInfo(fmt.Sprintf("Would delete %s", outcome.target.File))
		case outcome.deleted:
			output.PrintSuccess(fmt.Sprintf("Deleted %s", outcome.target.File))
		default:
			report(outcome.result, dryRun, h.differ)
		}
	}

	output.PrintSuccess(fmt.Sprintf(
		"Applied %d %s in %s",
		len(targets),
		output.Plural(len(targets), "target", "targets"),
		progress.FormatDuration(time.Since(startTime)),
	))
	return nil
}

func (h *ApplyCommandHandler) applyGroup(
	ctx context.Context,
	group targetGroup,
	targets []core.ScriptTarget,
	outcomes []targetOutcome,
	dryRun bool,
) error {
	for _, index := range group.targets {
		// Cancellation is only honoured between targets.
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		target := targets[index]
		outcome := targetOutcome{target: target}
		if target.Delete {
			outcome.deleted = true
			if !dryRun {
				if err := h.editor.Open(target.File).Delete(); err != nil {
					return err
				}
			}
		} else {
			result, err := run(target.Builder(h.editor), dryRun)
			if err != nil {
				return fmt.Errorf("%s: %w", target.File, err)
			}
			outcome.result = result
		}
		outcomes[index] = outcome
	}
	return nil
}

// groupTargets joins targets that touch a common resolved path. Groups are
// ordered by their first target.
func (h *ApplyCommandHandler) groupTargets(targets []core.ScriptTarget) ([]targetGroup, error) {
	parent := make([]int, len(targets))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		if ra < rb {
			parent[rb] = ra
		} else {
			parent[ra] = rb
		}
	}

	owner := make(map[string]int)
	for i, target := range targets {
		for _, path := range target.Paths() {
			resolved, err := h.fileSystem.ResolvePath(path)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			if j, ok := owner[resolved]; ok {
				union(i, j)
			} else {
				owner[resolved] = i
			}
		}
	}

	var groups []targetGroup
	position := make(map[int]int)
	for i, target := range targets {
		root := find(i)
		g, ok := position[root]
		if !ok {
			g = len(groups)
			position[root] = g
			groups = append(groups, targetGroup{name: target.File})
		}
		groups[g].targets = append(groups[g].targets, i)
	}
	for i := range groups {
		if extra := len(groups[i].targets) - 1; extra > 0 {
			groups[i].name = fmt.Sprintf("%s (+%d more)", groups[i].name, extra)
		}
	}
	return groups, nil
}
