package engine

// TopView is what a player can see of a face-down or face-up pile top.
type TopView struct {
	Card   Card `json:"card"` // CardEmpty while face down
	Gen    int  `json:"gen"`  // the card back shows the stage
	FaceUp bool `json:"face_up"`
	Empty  bool `json:"empty"`
}

// View is the table state read after every mutating call.
type View struct {
	Config            NationConfig        `json:"config"`
	Piles             map[PileName][]Card `json:"piles"`
	ExploreRevealed   bool                `json:"explore_revealed"`
	RussiaRevealed    bool                `json:"russia_revealed"`
	ExploreTop        TopView             `json:"explore_top"`
	RussiaTop         TopView             `json:"russia_top"`
	ImmigrationActive bool                `json:"immigration_active"`
	RussiaActive      bool                `json:"russia_active"`
	Finished          bool                `json:"finished"` // explore pile is used up
	Total             int                 `json:"total"`
}

func (g *Game) View() View {
	v := View{
		Config:            g.Config,
		Piles:             make(map[PileName][]Card, pileCount),
		ExploreRevealed:   g.ExploreRevealed,
		RussiaRevealed:    g.RussiaRevealed,
		ExploreTop:        g.topView(PileExplore, g.ExploreRevealed, CardFinish),
		RussiaTop:         g.topView(PileRussiaHidden, g.RussiaRevealed, CardEmpty),
		ImmigrationActive: g.ImmigrationActive(),
		RussiaActive:      g.Config.UsesRussiaPile(),
		Finished:          g.Len(PileExplore) == 0,
		Total:             g.Total(),
	}
	for _, p := range AllPiles() {
		v.Piles[p] = g.Pile(p)
	}
	return v
}

// An empty pile shows the placeholder card face up.
func (g *Game) topView(p PileName, revealed bool, placeholder Card) TopView {
	top, ok := g.Top(p)
	if !ok {
		return TopView{Card: placeholder, FaceUp: true, Empty: true}
	}
	tv := TopView{Gen: top.Gen(), FaceUp: revealed}
	if revealed {
		tv.Card = top
	}
	return tv
}
