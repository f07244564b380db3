package pipeline

// Job is one platform build job with its matrix and ordered steps.
type Job struct {
	Name     string
	Platform Platform
	Matrix   []MatrixEntry
	Steps    []Step
}

// SdistJob builds and uploads the source distribution. It runs on a fixed
// Linux runner with no matrix.
type SdistJob struct {
	// ExtraArgs follow the output-directory argument, in order.
	ExtraArgs []string
}

// ReleaseJob is the terminal job. It triggers only on tag pushes, depends
// on every prior job, downloads all artifacts and publishes to the index.
type ReleaseJob struct {
	// Needs lists every prior job name in emission order.
	Needs []string

	// AttachWasm adds a source-control release-asset upload for the
	// emscripten wheels, which the package index refuses.
	AttachWasm bool
}

// Graph is the complete provider-agnostic pipeline.
type Graph struct {
	// InvokedWith is the regeneration command for the file header.
	InvokedWith string

	Jobs    []Job
	Sdist   *SdistJob
	Release ReleaseJob
}

// Assemble builds the pipeline graph for a config. It never fails: every
// decision below is a table lookup or a boolean predicate.
func Assemble(cfg *Config) *Graph {
	g := &Graph{InvokedWith: cfg.InvokedWith}

	hasEmscripten := false
	for _, p := range Expand(cfg.platforms, cfg.Bridge) {
		// Hard override: a standalone binary has nothing to run in the
		// emscripten sandbox, even when the platform was named
		// explicitly rather than via the wildcard.
		if IsBin(cfg.Bridge) && p == PlatformEmscripten {
			continue
		}
		if p == PlatformEmscripten {
			hasEmscripten = true
		}
		job := Job{
			Name:     p.String(),
			Platform: p,
			Matrix:   Matrix(p),
			Steps:    Sequence(cfg, p),
		}
		g.Jobs = append(g.Jobs, job)
		g.Release.Needs = append(g.Release.Needs, job.Name)
	}

	if cfg.Sdist {
		sdist := &SdistJob{}
		if m := cfg.customManifest(); m != "" {
			sdist.ExtraArgs = []string{"--manifest-path", m}
		}
		g.Sdist = sdist
		g.Release.Needs = append(g.Release.Needs, "sdist")
	}

	g.Release.AttachWasm = hasEmscripten
	return g
}
