package audio

// Instrument is the top-level façade: it spawns one family per configured
// sample and a loom that starts routing once all of them have settled.
type Instrument struct {
	loom     *Loom
	families []*Family
}

func NewInstrument(configs []FamilyConfig, loader Loader, out Output) *Instrument {
	families := make([]*Family, 0, len(configs))
	for _, cfg := range configs {
		families = append(families, NewFamily(cfg))
	}
	loom := NewLoom()
	loom.Await(families)
	for _, f := range families {
		f.Load(loader, out, loom.FamilySettled)
	}
	return &Instrument{loom: loom, families: families}
}

// Handle routes one performance message. It is the entry point the
// transport feeds, one message at a time.
func (i *Instrument) Handle(msg Message) {
	i.loom.Route(msg)
}

func (i *Instrument) Ready() bool { return i.loom.Built() }

// Done is closed once all families have settled and routing has begun.
func (i *Instrument) Done() <-chan struct{} { return i.loom.Done() }

func (i *Instrument) Mapped() []int { return i.loom.Mapped() }

func (i *Instrument) Families() []*Family { return i.families }
