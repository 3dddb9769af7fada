package caveset

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-caves/internal/cave"
)

// YAMLSet is the YAML structure of a cave-set file.
type YAMLSet struct {
	Name        string            `yaml:"name"`
	Author      string            `yaml:"author,omitempty"`
	Description string            `yaml:"description,omitempty"`
	Legend      map[string]string `yaml:"legend,omitempty"` // map character -> element name
	Caves       []YAMLCave        `yaml:"caves"`
}

// YAMLCave is one cave of a set.
type YAMLCave struct {
	Name         string            `yaml:"name"`
	Author       string            `yaml:"author,omitempty"`
	Description  string            `yaml:"description,omitempty"`
	Date         string            `yaml:"date,omitempty"`
	Size         YAMLSize          `yaml:"size"`
	Intermission bool              `yaml:"intermission,omitempty"`
	Selectable   *bool             `yaml:"selectable,omitempty"`
	Engine       map[string]any    `yaml:"engine,omitempty"`
	Levels       YAMLLevels        `yaml:"levels,omitempty"`
	Fill         string            `yaml:"fill,omitempty"`
	Border       string            `yaml:"border,omitempty"`
	RandomFill   []YAMLRandom      `yaml:"random_fill,omitempty"`
	Legend       map[string]string `yaml:"legend,omitempty"`
	Map          []string          `yaml:"map,omitempty"`
	Objects      []YAMLObject      `yaml:"objects,omitempty"`
	Replays      []YAMLReplay      `yaml:"replays,omitempty"`
	HighScores   []YAMLScore       `yaml:"highscores,omitempty"`
	Tags         map[string]string `yaml:"tags,omitempty"`
}

// YAMLSize represents cave dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// PerLevel holds one value for every difficulty level, or a single value
// shared by all of them.
type PerLevel[T any] []T

func (p PerLevel[T]) each(name string, set func(level int, v T)) error {
	switch len(p) {
	case 0:
	case 1:
		for l := 0; l < cave.NumLevels; l++ {
			set(l, p[0])
		}
	case cave.NumLevels:
		for l, v := range p {
			set(l, v)
		}
	default:
		return fmt.Errorf("%s: want 1 or %d values, got %d", name, cave.NumLevels, len(p))
	}
	return nil
}

func perLevel[T comparable](get func(level int) T) PerLevel[T] {
	vals := make(PerLevel[T], cave.NumLevels)
	same := true
	for l := range vals {
		vals[l] = get(l)
		same = same && vals[l] == vals[0]
	}
	if same {
		return vals[:1]
	}
	return vals
}

// YAMLLevels are the per-level parameters.
type YAMLLevels struct {
	Time                 PerLevel[int]  `yaml:"time,omitempty"`
	Diamonds             PerLevel[int]  `yaml:"diamonds,omitempty"`
	Speed                PerLevel[int]  `yaml:"speed,omitempty"`
	HWDelay              PerLevel[int]  `yaml:"hw_delay,omitempty"`
	RandSeed             PerLevel[int]  `yaml:"rand_seed,omitempty"`
	RandomC64            PerLevel[bool] `yaml:"random_c64,omitempty"`
	AmoebaTime           PerLevel[int]  `yaml:"amoeba_time,omitempty"`
	AmoebaThreshold      PerLevel[int]  `yaml:"amoeba_threshold,omitempty"`
	Amoeba2Time          PerLevel[int]  `yaml:"amoeba2_time,omitempty"`
	Amoeba2Threshold     PerLevel[int]  `yaml:"amoeba2_threshold,omitempty"`
	MagicWallTime        PerLevel[int]  `yaml:"magic_wall_time,omitempty"`
	SlimePermeability    PerLevel[int]  `yaml:"slime_permeability,omitempty"`
	SlimePermeabilityC64 PerLevel[int]  `yaml:"slime_permeability_c64,omitempty"`
	SlimeSeedC64         PerLevel[int]  `yaml:"slime_seed_c64,omitempty"`
	HatchingDelayFrame   PerLevel[int]  `yaml:"hatching_delay_frame,omitempty"`
	HatchingDelayTime    PerLevel[int]  `yaml:"hatching_delay_time,omitempty"`
	BonusTime            PerLevel[int]  `yaml:"bonus_time,omitempty"`
	PenaltyTime          PerLevel[int]  `yaml:"penalty_time,omitempty"`
}

type levelInt struct {
	name string
	vals func(y *YAMLLevels) *PerLevel[int]
	dst  func(lp *cave.LevelParams) *int
}

var levelInts = []levelInt{
	{"time", func(y *YAMLLevels) *PerLevel[int] { return &y.Time }, func(lp *cave.LevelParams) *int { return &lp.Time }},
	{"diamonds", func(y *YAMLLevels) *PerLevel[int] { return &y.Diamonds }, func(lp *cave.LevelParams) *int { return &lp.Diamonds }},
	{"speed", func(y *YAMLLevels) *PerLevel[int] { return &y.Speed }, func(lp *cave.LevelParams) *int { return &lp.Speed }},
	{"hw_delay", func(y *YAMLLevels) *PerLevel[int] { return &y.HWDelay }, func(lp *cave.LevelParams) *int { return &lp.HWDelay }},
	{"rand_seed", func(y *YAMLLevels) *PerLevel[int] { return &y.RandSeed }, func(lp *cave.LevelParams) *int { return &lp.RandSeed }},
	{"amoeba_time", func(y *YAMLLevels) *PerLevel[int] { return &y.AmoebaTime }, func(lp *cave.LevelParams) *int { return &lp.AmoebaTime }},
	{"amoeba_threshold", func(y *YAMLLevels) *PerLevel[int] { return &y.AmoebaThreshold }, func(lp *cave.LevelParams) *int { return &lp.AmoebaThreshold }},
	{"amoeba2_time", func(y *YAMLLevels) *PerLevel[int] { return &y.Amoeba2Time }, func(lp *cave.LevelParams) *int { return &lp.Amoeba2Time }},
	{"amoeba2_threshold", func(y *YAMLLevels) *PerLevel[int] { return &y.Amoeba2Threshold }, func(lp *cave.LevelParams) *int { return &lp.Amoeba2Threshold }},
	{"magic_wall_time", func(y *YAMLLevels) *PerLevel[int] { return &y.MagicWallTime }, func(lp *cave.LevelParams) *int { return &lp.MagicWallTime }},
	{"slime_permeability", func(y *YAMLLevels) *PerLevel[int] { return &y.SlimePermeability }, func(lp *cave.LevelParams) *int { return &lp.SlimePermeability }},
	{"slime_permeability_c64", func(y *YAMLLevels) *PerLevel[int] { return &y.SlimePermeabilityC64 }, func(lp *cave.LevelParams) *int { return &lp.SlimePermeabilityC64 }},
	{"slime_seed_c64", func(y *YAMLLevels) *PerLevel[int] { return &y.SlimeSeedC64 }, func(lp *cave.LevelParams) *int { return &lp.SlimeSeedC64 }},
	{"hatching_delay_frame", func(y *YAMLLevels) *PerLevel[int] { return &y.HatchingDelayFrame }, func(lp *cave.LevelParams) *int { return &lp.HatchingDelayFrame }},
	{"hatching_delay_time", func(y *YAMLLevels) *PerLevel[int] { return &y.HatchingDelayTime }, func(lp *cave.LevelParams) *int { return &lp.HatchingDelayTime }},
	{"bonus_time", func(y *YAMLLevels) *PerLevel[int] { return &y.BonusTime }, func(lp *cave.LevelParams) *int { return &lp.BonusTime }},
	{"penalty_time", func(y *YAMLLevels) *PerLevel[int] { return &y.PenaltyTime }, func(lp *cave.LevelParams) *int { return &lp.PenaltyTime }},
}

// YAMLRandom is one candidate of a random fill.
type YAMLRandom struct {
	Elem string `yaml:"elem"`
	Prob int    `yaml:"prob"` // 0..255
}

// YAMLObject is a construction object. Levels are 1-based; an empty list
// means every level.
type YAMLObject struct {
	Kind       string        `yaml:"kind"`
	Levels     []int         `yaml:"levels,omitempty"`
	X1         int           `yaml:"x1"`
	Y1         int           `yaml:"y1"`
	X2         int           `yaml:"x2,omitempty"`
	Y2         int           `yaml:"y2,omitempty"`
	DX         *int          `yaml:"dx,omitempty"`
	DY         *int          `yaml:"dy,omitempty"`
	Elem       string        `yaml:"elem,omitempty"`
	Fill       string        `yaml:"fill,omitempty"`
	Seed       PerLevel[int] `yaml:"seed,omitempty"`
	Horiz      *int          `yaml:"horiz,omitempty"`
	WallWidth  *int          `yaml:"wall_width,omitempty"`
	PathWidth  *int          `yaml:"path_width,omitempty"`
	RandomFill []YAMLRandom  `yaml:"random_fill,omitempty"`
	Mask       string        `yaml:"mask,omitempty"`
	C64Random  bool          `yaml:"c64_random,omitempty"`
	Mirror     bool          `yaml:"mirror,omitempty"`
	Flip       bool          `yaml:"flip,omitempty"`
}

// YAMLReplay is a recorded game. Level is 1-based.
type YAMLReplay struct {
	Player   string        `yaml:"player,omitempty"`
	Date     time.Time     `yaml:"date,omitempty"`
	Level    int           `yaml:"level"`
	Seed     uint32        `yaml:"seed"`
	Checksum uint32        `yaml:"checksum"`
	Success  bool          `yaml:"success,omitempty"`
	Score    int           `yaml:"score,omitempty"`
	Duration time.Duration `yaml:"duration,omitempty"`
	Comment  string        `yaml:"comment,omitempty"`
	Moves    string        `yaml:"moves"`
}

// YAMLScore is a highscore table entry.
type YAMLScore struct {
	Name  string `yaml:"name"`
	Score int    `yaml:"score"`
}

// ParseYAML parses a cave-set file.
func ParseYAML(data []byte) (*Set, error) {
	var ys YAMLSet
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if len(ys.Caves) == 0 {
		return nil, fmt.Errorf("%w: no caves", ErrInvalid)
	}

	set := &Set{
		Name:        ys.Name,
		Author:      ys.Author,
		Description: ys.Description,
		Format:      FormatYAML,
	}
	for i := range ys.Caves {
		def, err := ys.Caves[i].definition(ys.Legend)
		if err != nil {
			return nil, fmt.Errorf("%w: cave %d (%s): %v", ErrInvalid, i+1, ys.Caves[i].Name, err)
		}
		set.Caves = append(set.Caves, def)
	}
	return set, nil
}

func element(name string) (cave.Element, error) {
	e, ok := cave.ElementByName(name)
	if !ok {
		return cave.None, fmt.Errorf("unknown element %q", name)
	}
	return e, nil
}

// definition converts a YAML cave. Fields the file leaves out keep the
// defaults of cave.NewDefinition.
func (yc *YAMLCave) definition(setLegend map[string]string) (*cave.Definition, error) {
	if yc.Size.W < 1 || yc.Size.H < 1 {
		return nil, fmt.Errorf("bad size %dx%d", yc.Size.W, yc.Size.H)
	}
	d := cave.NewDefinition(yc.Size.W, yc.Size.H)
	d.Name = yc.Name
	d.Author = yc.Author
	d.Description = yc.Description
	d.Date = yc.Date
	d.Intermission = yc.Intermission
	if yc.Selectable != nil {
		d.Selectable = *yc.Selectable
	}
	for k, v := range yc.Tags {
		d.Tags[k] = v
	}

	if err := applySettings(d, yc.Engine); err != nil {
		return nil, err
	}
	for _, li := range levelInts {
		err := li.vals(&yc.Levels).each(li.name, func(l int, v int) {
			*li.dst(&d.Levels[l]) = v
		})
		if err != nil {
			return nil, err
		}
	}
	err := yc.Levels.RandomC64.each("random_c64", func(l int, v bool) { d.Levels[l].RandomC64 = v })
	if err != nil {
		return nil, err
	}

	if yc.Fill != "" {
		if d.InitialFill, err = element(yc.Fill); err != nil {
			return nil, err
		}
	}
	if yc.Border != "" {
		if d.InitialBorder, err = element(yc.Border); err != nil {
			return nil, err
		}
	}
	if d.RandomFill, d.RandomProb, err = randomFill(yc.RandomFill); err != nil {
		return nil, err
	}

	if len(yc.Map) > 0 {
		legend, err := mergeLegends(setLegend, yc.Legend)
		if err != nil {
			return nil, err
		}
		if d.Map, err = parseMap(yc.Map, d.W, d.H, legend); err != nil {
			return nil, err
		}
	}

	for i := range yc.Objects {
		o, err := yc.Objects[i].object()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i+1, err)
		}
		d.Objects = append(d.Objects, o)
	}

	for i, yr := range yc.Replays {
		moves, err := cave.DecodeMoves(yr.Moves)
		if err != nil {
			return nil, fmt.Errorf("replay %d: %w", i+1, err)
		}
		if yr.Level < 1 || yr.Level > cave.NumLevels {
			return nil, fmt.Errorf("replay %d: level %d out of range", i+1, yr.Level)
		}
		d.Replays = append(d.Replays, cave.Replay{
			Seed:     yr.Seed,
			Level:    yr.Level - 1,
			Checksum: yr.Checksum,
			Moves:    moves,
			Player:   yr.Player,
			Date:     yr.Date,
			Success:  yr.Success,
			Score:    yr.Score,
			Duration: yr.Duration,
			Comment:  yr.Comment,
		})
	}
	for _, s := range yc.HighScores {
		d.Scores = append(d.Scores, cave.HighScore{Name: s.Name, Score: s.Score})
	}
	return d, nil
}

func randomFill(list []YAMLRandom) ([4]cave.Element, [4]int, error) {
	fill := [4]cave.Element{cave.Space, cave.Space, cave.Space, cave.Space}
	var prob [4]int
	if len(list) > len(fill) {
		return fill, prob, fmt.Errorf("random_fill: at most %d candidates", len(fill))
	}
	for i, r := range list {
		e, err := element(r.Elem)
		if err != nil {
			return fill, prob, err
		}
		if r.Prob < 0 || r.Prob > 255 {
			return fill, prob, fmt.Errorf("random_fill: probability %d out of range 0..255", r.Prob)
		}
		fill[i], prob[i] = e, r.Prob
	}
	return fill, prob, nil
}

func mergeLegends(legends ...map[string]string) (map[rune]cave.Element, error) {
	out := make(map[rune]cave.Element)
	for _, legend := range legends {
		for ch, name := range legend {
			r, size := utf8.DecodeRuneInString(ch)
			if size == 0 || size != len(ch) {
				return nil, fmt.Errorf("legend key %q is not a single character", ch)
			}
			e, err := element(name)
			if err != nil {
				return nil, err
			}
			out[r] = e
		}
	}
	return out, nil
}

func parseMap(rows []string, w, h int, legend map[rune]cave.Element) ([][]cave.Element, error) {
	if len(rows) != h {
		return nil, fmt.Errorf("map has %d rows, want %d", len(rows), h)
	}
	out := make([][]cave.Element, h)
	for y, row := range rows {
		line := make([]cave.Element, 0, w)
		for _, r := range row {
			e, ok := legend[r]
			if !ok {
				e, ok = cave.ElementByChar(r)
			}
			if !ok {
				return nil, fmt.Errorf("map row %d: unknown character %q", y+1, r)
			}
			line = append(line, e)
		}
		if len(line) != w {
			return nil, fmt.Errorf("map row %d has %d cells, want %d", y+1, len(line), w)
		}
		out[y] = line
	}
	return out, nil
}

func (yo *YAMLObject) object() (cave.Object, error) {
	kind, ok := cave.ParseObjectKind(yo.Kind)
	if !ok {
		return cave.Object{}, fmt.Errorf("unknown kind %q", yo.Kind)
	}
	o := cave.NewObject(kind)
	if len(yo.Levels) > 0 {
		o.Levels = [cave.NumLevels]bool{}
		for _, l := range yo.Levels {
			if l < 1 || l > cave.NumLevels {
				return o, fmt.Errorf("level %d out of range", l)
			}
			o.Levels[l-1] = true
		}
	}
	o.X1, o.Y1, o.X2, o.Y2 = yo.X1, yo.Y1, yo.X2, yo.Y2
	setInt(&o.DX, yo.DX)
	setInt(&o.DY, yo.DY)
	setInt(&o.HorizPercent, yo.Horiz)
	setInt(&o.WallWidth, yo.WallWidth)
	setInt(&o.PathWidth, yo.PathWidth)

	var err error
	if yo.Elem != "" {
		if o.Elem, err = element(yo.Elem); err != nil {
			return o, err
		}
	}
	if yo.Fill != "" {
		if o.Fill, err = element(yo.Fill); err != nil {
			return o, err
		}
	}
	if yo.Mask != "" {
		if o.Mask, err = element(yo.Mask); err != nil {
			return o, err
		}
	}
	if len(yo.RandomFill) > 0 {
		if o.RandomFill, o.RandomProb, err = randomFill(yo.RandomFill); err != nil {
			return o, err
		}
	}
	if err := yo.Seed.each("seed", func(l int, v int) { o.Seed[l] = v }); err != nil {
		return o, err
	}
	o.C64Random, o.Mirror, o.Flip = yo.C64Random, yo.Mirror, yo.Flip
	return o, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// MarshalYAML renders a set as a cave-set file. Elements without a map
// character get one from the cave's legend.
func MarshalYAML(set *Set) ([]byte, error) {
	ys := YAMLSet{
		Name:        set.Name,
		Author:      set.Author,
		Description: set.Description,
	}
	for _, d := range set.Caves {
		yc, err := yamlCave(d)
		if err != nil {
			return nil, fmt.Errorf("cave %s: %w", d.Name, err)
		}
		ys.Caves = append(ys.Caves, yc)
	}
	return yaml.Marshal(&ys)
}

func yamlCave(d *cave.Definition) (YAMLCave, error) {
	selectable := d.Selectable
	yc := YAMLCave{
		Name:         d.Name,
		Author:       d.Author,
		Description:  d.Description,
		Date:         d.Date,
		Size:         YAMLSize{W: d.W, H: d.H},
		Intermission: d.Intermission,
		Selectable:   &selectable,
		Engine:       exportSettings(d),
		Fill:         d.InitialFill.String(),
		Border:       d.InitialBorder.String(),
		Tags:         d.Tags,
	}
	for _, li := range levelInts {
		*li.vals(&yc.Levels) = perLevel(func(l int) int { return *li.dst(&d.Levels[l]) })
	}
	yc.Levels.RandomC64 = perLevel(func(l int) bool { return d.Levels[l].RandomC64 })
	yc.RandomFill = yamlRandom(d.RandomFill, d.RandomProb)

	if d.Map != nil {
		rows, legend, err := mapRows(d.Map)
		if err != nil {
			return yc, err
		}
		yc.Map, yc.Legend = rows, legend
	}
	for i := range d.Objects {
		yc.Objects = append(yc.Objects, yamlObject(&d.Objects[i]))
	}
	for _, r := range d.Replays {
		yc.Replays = append(yc.Replays, YAMLReplay{
			Player:   r.Player,
			Date:     r.Date,
			Level:    r.Level + 1,
			Seed:     r.Seed,
			Checksum: r.Checksum,
			Success:  r.Success,
			Score:    r.Score,
			Duration: r.Duration,
			Comment:  r.Comment,
			Moves:    cave.EncodeMoves(r.Moves),
		})
	}
	for _, s := range d.Scores {
		yc.HighScores = append(yc.HighScores, YAMLScore{Name: s.Name, Score: s.Score})
	}
	return yc, nil
}

// legendPool are the characters handed out to elements without a printable
// map character.
const legendPool = "!\"#$%&'()*+-/0123456789:;<=>EIJKNSUYZ[\\]^_`efhijklmnptuyz{|}"

func mapRows(m [][]cave.Element) ([]string, map[string]string, error) {
	assigned := make(map[cave.Element]rune)
	legend := make(map[string]string)
	pool := []rune(legendPool)
	rows := make([]string, len(m))
	for y, row := range m {
		var b strings.Builder
		for _, e := range row {
			r, ok := assigned[e]
			if !ok {
				r = e.Props().Char
				if r < ' ' || r > '~' {
					if len(pool) == 0 {
						return nil, nil, fmt.Errorf("map uses too many elements without a character")
					}
					r, pool = pool[0], pool[1:]
					legend[string(r)] = e.String()
				}
				assigned[e] = r
			}
			b.WriteRune(r)
		}
		rows[y] = b.String()
	}
	if len(legend) == 0 {
		legend = nil
	}
	return rows, legend, nil
}

func yamlObject(o *cave.Object) YAMLObject {
	dx, dy := o.DX, o.DY
	horiz, wall, path := o.HorizPercent, o.WallWidth, o.PathWidth
	yo := YAMLObject{
		Kind:      o.Kind.String(),
		X1:        o.X1,
		Y1:        o.Y1,
		X2:        o.X2,
		Y2:        o.Y2,
		DX:        &dx,
		DY:        &dy,
		Elem:      o.Elem.String(),
		Fill:      o.Fill.String(),
		Seed:      perLevel(func(l int) int { return o.Seed[l] }),
		Horiz:     &horiz,
		WallWidth: &wall,
		PathWidth: &path,
		Mask:      o.Mask.String(),
		C64Random: o.C64Random,
		Mirror:    o.Mirror,
		Flip:      o.Flip,
	}
	if o.Levels != cave.AllLevels {
		for l, on := range o.Levels {
			if on {
				yo.Levels = append(yo.Levels, l+1)
			}
		}
	}
	yo.RandomFill = yamlRandom(o.RandomFill, o.RandomProb)
	return yo
}

// yamlRandom lists the candidates up to the last one that differs from an
// unused slot (space, probability 0).
func yamlRandom(fill [4]cave.Element, prob [4]int) []YAMLRandom {
	n := 0
	for i := range fill {
		if fill[i] != cave.Space || prob[i] != 0 {
			n = i + 1
		}
	}
	var out []YAMLRandom
	for i := 0; i < n; i++ {
		out = append(out, YAMLRandom{Elem: fill[i].String(), Prob: prob[i]})
	}
	return out
}
