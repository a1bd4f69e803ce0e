package settlement

// Color is an RGBA quadruple on 0..1, used by artists for territory and
// house tinting.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// NationDescription is the static identity of a nation: flag color, skin
// color for its avatars and the pool its town names are drawn from.
type NationDescription struct {
	Name      string   `json:"name"`
	Color     Color    `json:"color"`
	SkinColor Color    `json:"skin_color"`
	TownNames []string `json:"town_names"`
}

// Nation pairs a description with a lazily built town namer.
type Nation struct {
	Description NationDescription
	namer       *Namer
}

func NewNation(description NationDescription) *Nation {
	return &Nation{Description: description}
}

func (n *Nation) GetTownName() string {
	if n.namer == nil {
		n.namer = NewNamer(n.Description.TownNames)
	}
	return n.namer.NextName()
}

// Nations indexes nations by name.
type Nations map[string]*Nation

func NewNations(descriptions []NationDescription) Nations {
	out := make(Nations, len(descriptions))
	for _, description := range descriptions {
		out[description.Name] = NewNation(description)
	}
	return out
}

var (
	lightSkin       = Color{1.0, 0.86, 0.73, 1.0}
	mediumLightSkin = Color{0.96, 0.76, 0.57, 1.0}
	mediumSkin      = Color{0.87, 0.65, 0.45, 1.0}
	mediumDarkSkin  = Color{0.66, 0.48, 0.33, 1.0}
	darkSkin        = Color{0.45, 0.31, 0.21, 1.0}
)

// NationDescriptions lists every nation that can found a homeland.
func NationDescriptions() []NationDescription {
	return []NationDescription{
		{
			Name:      "China",
			Color:     Color{1.0, 0.7, 0.0, 1.0},
			SkinColor: mediumLightSkin,
			TownNames: []string{"Changde", "Fuzhou", "Kaifeng", "Luoyang", "Nanjing", "Quanzhou", "Suzhou", "Wuchang", "Xiangyang", "Yangzhou"},
		},
		{
			Name:      "France",
			Color:     Color{0.0, 0.0, 0.5, 1.0},
			SkinColor: lightSkin,
			TownNames: []string{"Amiens", "Bordeaux", "Chartres", "Dijon", "Lyon", "Marseille", "Orleans", "Reims", "Rouen", "Toulouse"},
		},
		{
			Name:      "Germany",
			Color:     Color{0.0, 0.0, 0.0, 1.0},
			SkinColor: lightSkin,
			TownNames: []string{"Aachen", "Bremen", "Erfurt", "Hamburg", "Leipzig", "Lubeck", "Mainz", "Nuremberg", "Regensburg", "Trier"},
		},
		{
			Name:      "India",
			Color:     Color{1.0, 0.4, 0.0, 1.0},
			SkinColor: mediumDarkSkin,
			TownNames: []string{"Agra", "Benares", "Calicut", "Delhi", "Gaur", "Madurai", "Multan", "Pataliputra", "Surat", "Vijayanagara"},
		},
		{
			Name:      "Indonesia",
			Color:     Color{1.0, 0.0, 0.0, 1.0},
			SkinColor: mediumSkin,
			TownNames: []string{"Banten", "Demak", "Gresik", "Kediri", "Makassar", "Majapahit", "Palembang", "Surabaya", "Ternate", "Tuban"},
		},
		{
			Name:      "Japan",
			Color:     Color{0.5, 0.0, 0.0, 1.0},
			SkinColor: mediumLightSkin,
			TownNames: []string{"Edo", "Hakata", "Hiraizumi", "Kamakura", "Kanazawa", "Kyoto", "Nagasaki", "Nara", "Osaka", "Sakai"},
		},
		{
			Name:      "Nigeria",
			Color:     Color{0.5, 1.0, 0.5, 1.0},
			SkinColor: darkSkin,
			TownNames: []string{"Benin", "Bida", "Ife", "Ilorin", "Kano", "Katsina", "Oyo", "Sokoto", "Zaria", "Zazzau"},
		},
		{
			Name:      "Russia",
			Color:     Color{0.0, 0.0, 1.0, 1.0},
			SkinColor: lightSkin,
			TownNames: []string{"Kazan", "Kiev", "Moscow", "Novgorod", "Pskov", "Ryazan", "Smolensk", "Suzdal", "Tver", "Vladimir"},
		},
		{
			Name:      "Spain",
			Color:     Color{1.0, 1.0, 0.0, 1.0},
			SkinColor: mediumLightSkin,
			TownNames: []string{"Burgos", "Cadiz", "Cordoba", "Granada", "Leon", "Salamanca", "Segovia", "Sevilla", "Toledo", "Valencia"},
		},
		{
			Name:      "Turkey",
			Color:     Color{0.0, 1.0, 1.0, 1.0},
			SkinColor: mediumLightSkin,
			TownNames: []string{"Ankara", "Antalya", "Bursa", "Edirne", "Erzurum", "Iznik", "Kayseri", "Konya", "Sivas", "Trabzon"},
		},
	}
}
