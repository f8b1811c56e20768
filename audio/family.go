package audio

import "log"

// FamilyConfig describes one sample and the pitch range it covers.
type FamilyConfig struct {
	URL       string
	BasePitch int
	Low, High int // closed offset range in semitones around BasePitch
}

// Family couples one sample asset with the voice bank derived from it.
// The bank is built only once the asset reports ready.
type Family struct {
	cfg   FamilyConfig
	asset *Asset
	bank  *Bank // nil until built, stays nil when the asset fails
}

func NewFamily(cfg FamilyConfig) *Family {
	return &Family{cfg: cfg, asset: NewAsset(cfg.URL)}
}

// Load begins fetching the family's sample. settled is called exactly once,
// whether or not the family ends up playable: a fetch or decode failure is
// logged, leaves this family without voices, and has no effect on its
// siblings.
func (f *Family) Load(loader Loader, out Output, settled func(*Family)) {
	f.asset.Load(loader, func(buf []float64, err error) {
		f.build(out, buf, err)
		settled(f)
	})
}

func (f *Family) build(out Output, buf []float64, err error) {
	lo, hi := f.cfg.BasePitch+f.cfg.Low, f.cfg.BasePitch+f.cfg.High
	if err != nil {
		log.Printf("family %s: %v, pitches %d..%d will be unplayable", f.cfg.URL, err, lo, hi)
		return
	}
	bank, err := NewBank(out, buf, f.cfg.BasePitch, f.cfg.Low, f.cfg.High)
	if err != nil {
		log.Printf("family %s: %v, pitches %d..%d will be unplayable", f.cfg.URL, err, lo, hi)
		return
	}
	f.bank = bank
	log.Printf("family %s: voices ready for pitches %d..%d", f.cfg.URL, lo, hi)
}

// Voices returns the family's voices, or nil when its sample never loaded.
func (f *Family) Voices() []*Voice {
	if f.bank == nil {
		return nil
	}
	return f.bank.Voices()
}

func (f *Family) Ready() bool { return f.bank != nil }

func (f *Family) Config() FamilyConfig { return f.cfg }
