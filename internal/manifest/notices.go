package manifest

import "sync"

// Notices suppresses repeated construction-time log lines. The dev-server
// notice and the missing-manifest warning share a single flag: whichever
// fires first wins, and later constructions sharing the same Notices stay
// quiet.
//
// A process normally creates one Notices and hands it to every resolver it
// builds. The zero value is ready to use.
type Notices struct {
	once sync.Once
}

func (n *Notices) announce(fn func()) {
	n.once.Do(fn)
}
