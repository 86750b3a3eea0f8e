package mdfu

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
)

// toolName is the transfer tool's console-script name.
const toolName = "pymdfu"

// probeTimeout bounds the module-invocation probe.
const probeTimeout = 10 * time.Second

// Invocation describes a resolved, ready-to-run way of launching the
// transfer tool.
type Invocation struct {
	// Path is the executable to spawn
	Path string

	// Args select the tool itself (e.g. "-m pymdfu" for a python module
	// invocation) and precede the transfer arguments
	Args []string
}

// Resolve locates the transfer tool. Strategies are tried in order: a PATH
// lookup of the console script, the Windows-specific locations (.exe and
// the interpreter's Scripts directory), a verified "python -m pymdfu"
// module invocation, and finally the bare tool name. The bare name defers
// the failure to spawn time, which fails loudly if nothing resolves.
func Resolve(ctx context.Context) Invocation {
	if path, err := exec.LookPath(toolName); err == nil {
		return Invocation{Path: path}
	}

	if runtime.GOOS == "windows" {
		if inv, ok := resolveWindows(); ok {
			return inv
		}
	}

	if inv, ok := resolveModule(ctx); ok {
		return inv
	}

	return Invocation{Path: toolName}
}

// resolveWindows tries the .exe name and the pip console-script locations
// next to the python interpreter.
func resolveWindows() (Invocation, bool) {
	if path, err := exec.LookPath(toolName + ".exe"); err == nil {
		return Invocation{Path: path}, true
	}

	for _, py := range []string{"python.exe", "python3.exe"} {
		pyPath, err := exec.LookPath(py)
		if err != nil {
			continue
		}
		scripts := filepath.Join(filepath.Dir(pyPath), "Scripts")
		for _, name := range []string{toolName + ".exe", toolName} {
			candidate := filepath.Join(scripts, name)
			if _, err := os.Stat(candidate); err == nil {
				return Invocation{Path: candidate}, true
			}
		}
	}
	return Invocation{}, false
}

// resolveModule checks whether the tool is importable as a python module by
// running it with --help under a short timeout.
func resolveModule(ctx context.Context) (Invocation, bool) {
	for _, py := range []string{"python3", "python"} {
		pyPath, err := exec.LookPath(py)
		if err != nil {
			continue
		}
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		err = exec.CommandContext(probeCtx, pyPath, "-m", toolName, "--help").Run()
		cancel()
		if err == nil {
			return Invocation{Path: pyPath, Args: []string{"-m", toolName}}, true
		}
	}
	return Invocation{}, false
}
