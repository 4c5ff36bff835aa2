// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/cpmech/gompm/inp"
	"github.com/cpmech/gompm/mpm"
	"github.com/cpmech/gompm/out"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/google/uuid"
)

func main() {

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)
	erasePrev := io.ArgToBool(2, true)
	nworkers := io.ArgToInt(3, 0)

	// message
	if verbose {
		io.Pf("\nGompm -- Go Material Point Method\n\n")
		io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")
		io.Pf("%-25s = %v\n", "filename path", fnamepath)
		io.Pf("%-25s = %v\n", "show messages", verbose)
		io.Pf("%-25s = %v\n", "erase previous results", erasePrev)
		io.Pf("%-25s = %v\n\n", "number of workers", nworkers)
	}
	chk.Verbose = verbose

	// run
	if err := run(fnamepath, verbose, erasePrev, nworkers); err != nil {
		io.Pfred("ERROR: %v\n", err)
		os.Exit(1)
	}
}

// run reads the simulation file, runs all steps and saves the summary
func run(fnamepath string, verbose, erasePrev bool, nworkers int) (err error) {

	// logger
	runId := uuid.NewString()
	log := inp.NewLogger(runId, verbose)
	defer log.Close()

	// simulation data
	sim, err := inp.ReadSim(fnamepath, "", erasePrev)
	if err != nil {
		return
	}
	if nworkers > 0 {
		sim.Solver.Nworkers = nworkers
	}
	if sim.Data.LogFile {
		if err = log.SetFile(sim.DirOut, sim.Key); err != nil {
			return
		}
	}
	log.Infof("run %s: %s (%s)\n", runId, sim.Key, sim.Data.Desc)

	// output hooks
	sum := out.NewSummary(sim, runId)
	hooks := []mpm.SnapshotWriter{out.NewStateWriter(sim, verbose), sum}
	if sim.Data.Vtu {
		hooks = append(hooks, out.NewVtuWriter(sim, verbose))
	}

	// allocate
	analysis, err := mpm.NewMain(sim, runId, log, hooks...)
	if err != nil {
		return
	}

	// run with interruption by ctrl+c
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	runErr := analysis.Run(ctx)

	// summary
	err = sum.Save(runErr, verbose)
	if runErr != nil {
		log.LogErr(err, "cannot save summary")
		return runErr
	}
	return
}
