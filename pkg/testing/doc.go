// Package testing provides a frame-stepping harness for timeline tests.
//
// # Quick Start
//
// Create a player, start a scene and pump frames:
//
//	func TestWave(t *testing.T) {
//	    player := timelinetest.NewScenePlayerWithT(t, 30)
//	    inst, _ := doc.Instance("wave", 1)
//	    player.Play(inst, nil)
//
//	    player.PumpFrames(15)
//	    if inst.Time() != 0.5 {
//	        t.Errorf("time = %v", inst.Time())
//	    }
//	}
//
// # Snapshot Testing
//
// Record an artboard's properties frame by frame and compare them against a
// golden file:
//
//	snapshot := player.Record(doc.Artboard, 30)
//	snapshot.MatchesFile(t, "testdata/wave.snapshot.yaml")
//
// Update snapshots with:
//
//	TIMELINE_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import timelinetest "github.com/go-drift/timeline/pkg/testing"
package testing
