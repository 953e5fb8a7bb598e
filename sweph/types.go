package sweph

import (
	swisseph "github.com/wippyai/swisseph-wasm"
)

// GeoPos is an observer's geographic position: longitude and latitude in
// degrees (east and north positive) and altitude above sea level in metres.
type GeoPos struct {
	Lon float64
	Lat float64
	Alt float64
}

func (g GeoPos) values() []float64 {
	return []float64{g.Lon, g.Lat, g.Alt}
}

// Position is the six-double result of the calc family. With FlagEquatorial
// the first pair is right ascension and declination; with FlagXYZ the
// values are cartesian.
type Position struct {
	Longitude      float64
	Latitude       float64
	Distance       float64 // AU
	SpeedLongitude float64 // degrees per day
	SpeedLatitude  float64
	SpeedDistance  float64
	Flags          swisseph.CalcFlag // flags the library actually applied
}

func positionOf(v []float64, flags swisseph.CalcFlag) Position {
	return Position{
		Longitude:      v[0],
		Latitude:       v[1],
		Distance:       v[2],
		SpeedLongitude: v[3],
		SpeedLatitude:  v[4],
		SpeedDistance:  v[5],
		Flags:          flags,
	}
}

// StarPosition is a fixed star's position and its catalog name as the
// library resolved it, e.g. "Aldebaran,alTau".
type StarPosition struct {
	Name string
	Position
}

// StarMagnitude is a fixed star's visual magnitude.
type StarMagnitude struct {
	Name      string
	Magnitude float64
}

// Date is a calendar date with a fractional hour.
type Date struct {
	Year  int
	Month int
	Day   int
	Hour  float64
}

// DateTime is a calendar date with whole hours and minutes.
type DateTime struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second float64
}

// JDPair holds one instant on both time scales.
type JDPair struct {
	ET float64 // ephemeris time (TT)
	UT float64 // UT1
}

// NodesApsides are the four orbit points returned by swe_nod_aps.
type NodesApsides struct {
	Ascending  Position
	Descending Position
	Perihelion Position
	Aphelion   Position
}

// OrbitalElements are the osculating elements of a body's orbit.
type OrbitalElements struct {
	SemiMajorAxis       float64 // AU
	Eccentricity        float64
	Inclination         float64
	AscendingNode       float64
	ArgPerihelion       float64
	LonPerihelion       float64
	MeanAnomaly         float64
	TrueAnomaly         float64
	EccentricAnomaly    float64
	MeanLongitude       float64
	SiderealPeriodYears float64
	MeanDailyMotion     float64
	TropicalPeriodYears float64
	SynodicPeriodDays   float64
	PerihelionPassage   float64 // Julian day
	PerihelionDistance  float64
	AphelionDistance    float64
}

// OrbitDistances are the extreme and current distances of a body, in AU.
type OrbitDistances struct {
	Max  float64
	Min  float64
	True float64
}

// Phenomena are the visual attributes of a planet or the Moon.
type Phenomena struct {
	PhaseAngle         float64
	Phase              float64 // illuminated fraction
	Elongation         float64
	DiscDiameter       float64 // degrees
	Magnitude          float64
	HorizontalParallax float64 // Moon only
}

// AscMC are the additional house points, in the library's index order.
type AscMC struct {
	Asc           float64
	MC            float64
	ARMC          float64
	Vertex        float64
	EquatorialAsc float64
	CoAscKoch     float64
	CoAscMunkasey float64
	PolarAsc      float64
}

func ascmcOf(v []float64) AscMC {
	return AscMC{
		Asc:           v[swisseph.Asc],
		MC:            v[swisseph.MC],
		ARMC:          v[swisseph.ARMC],
		Vertex:        v[swisseph.Vertex],
		EquatorialAsc: v[swisseph.EquAsc],
		CoAscKoch:     v[swisseph.CoAsc1],
		CoAscMunkasey: v[swisseph.CoAsc2],
		PolarAsc:      v[swisseph.PolAsc],
	}
}

// Houses holds house cusps and angles. Cusps[0] is house 1.
type Houses struct {
	System      swisseph.HouseSystem
	Cusps       []float64
	Points      AscMC
	CuspSpeeds  []float64 // only from the ex2 variants
	PointSpeeds *AscMC    // only from the ex2 variants
}

// Horizontal is a position in the observer's horizon frame.
type Horizontal struct {
	Azimuth          float64 // from south, clockwise via west
	TrueAltitude     float64
	ApparentAltitude float64
}

// Refraction is the detailed result of swe_refrac_extended.
type Refraction struct {
	Altitude         float64 // converted altitude
	TrueAltitude     float64
	ApparentAltitude float64
	Refraction       float64
	Dip              float64 // dip of the horizon
}

// RiseTransit is the time of a rise, set or meridian transit.
type RiseTransit struct {
	Time  float64 // Julian day UT
	Event swisseph.RiseFlag
}

// SolarEclipseAttributes describe a solar eclipse or occultation as seen
// from one place.
type SolarEclipseAttributes struct {
	Magnitude        float64 // fraction of the solar diameter covered
	DiameterRatio    float64 // lunar over solar diameter
	Obscuration      float64 // fraction of the disc area covered
	CoreShadowKm     float64
	Azimuth          float64
	TrueAltitude     float64
	ApparentAltitude float64
	Elongation       float64 // angular distance of Moon from Sun
	MagnitudeNASA    float64
	SarosSeries      float64
	SarosMember      float64
}

func solarAttrOf(v []float64) SolarEclipseAttributes {
	return SolarEclipseAttributes{
		Magnitude:        v[0],
		DiameterRatio:    v[1],
		Obscuration:      v[2],
		CoreShadowKm:     v[3],
		Azimuth:          v[4],
		TrueAltitude:     v[5],
		ApparentAltitude: v[6],
		Elongation:       v[7],
		MagnitudeNASA:    v[8],
		SarosSeries:      v[9],
		SarosMember:      v[10],
	}
}

// LunarEclipseAttributes describe a lunar eclipse as seen from one place.
type LunarEclipseAttributes struct {
	UmbralMagnitude    float64
	PenumbralMagnitude float64
	Azimuth            float64
	TrueAltitude       float64
	ApparentAltitude   float64
	OppositionDistance float64 // Moon's distance from opposition, degrees
	SarosSeries        float64
	SarosMember        float64
}

func lunarAttrOf(v []float64) LunarEclipseAttributes {
	return LunarEclipseAttributes{
		UmbralMagnitude:    v[0],
		PenumbralMagnitude: v[1],
		Azimuth:            v[4],
		TrueAltitude:       v[5],
		ApparentAltitude:   v[6],
		OppositionDistance: v[7],
		SarosSeries:        v[9],
		SarosMember:        v[10],
	}
}

// EclipsePath is where a solar eclipse or occultation is central or
// maximal at a given moment.
type EclipsePath struct {
	Type   swisseph.EclipseFlag
	Lon    float64
	Lat    float64
	Limits [8]float64 // umbra and penumbra limit coordinates, lon/lat pairs
	Attr   SolarEclipseAttributes
}

// SolarEclipseLocal is a solar eclipse or occultation seen from one place
// at one moment.
type SolarEclipseLocal struct {
	Type swisseph.EclipseFlag
	Attr SolarEclipseAttributes
}

// LocalContacts are the contact times of an eclipse at one place, in
// Julian days UT. Zero means the contact does not occur.
type LocalContacts struct {
	Maximum float64
	First   float64
	Second  float64
	Third   float64
	Fourth  float64
	Rise    float64 // Sun or Moon rises during the eclipse
	Set     float64 // Sun or Moon sets during the eclipse
}

// SolarEclipseSearch is the next solar eclipse or occultation visible from
// one place.
type SolarEclipseSearch struct {
	Type  swisseph.EclipseFlag
	Times LocalContacts
	Attr  SolarEclipseAttributes
}

// GlobalEclipseTimes are the phases of a solar eclipse or occultation
// anywhere on Earth, in Julian days UT.
type GlobalEclipseTimes struct {
	Maximum         float64
	LocalNoon       float64 // eclipse at local apparent noon
	Begin           float64
	End             float64
	TotalityBegin   float64
	TotalityEnd     float64
	CenterLineBegin float64
	CenterLineEnd   float64
	AnnularToTotal  float64
	TotalToAnnular  float64
}

// GlobalEclipse is the next solar eclipse or occultation anywhere on Earth.
type GlobalEclipse struct {
	Type  swisseph.EclipseFlag
	Times GlobalEclipseTimes
}

// LunarEclipseTimes are the phases of a lunar eclipse, in Julian days UT.
type LunarEclipseTimes struct {
	Maximum        float64
	PartialBegin   float64
	PartialEnd     float64
	TotalBegin     float64
	TotalEnd       float64
	PenumbralBegin float64
	PenumbralEnd   float64
}

func lunarTimesOf(v []float64) LunarEclipseTimes {
	return LunarEclipseTimes{
		Maximum:        v[0],
		PartialBegin:   v[2],
		PartialEnd:     v[3],
		TotalBegin:     v[4],
		TotalEnd:       v[5],
		PenumbralBegin: v[6],
		PenumbralEnd:   v[7],
	}
}

// LunarEclipse is the next lunar eclipse.
type LunarEclipse struct {
	Type  swisseph.EclipseFlag
	Times LunarEclipseTimes
}

// LunarEclipseLocal is a lunar eclipse seen from one place.
type LunarEclipseLocal struct {
	Type swisseph.EclipseFlag
	Attr LunarEclipseAttributes
}

// LunarEclipseSearch is the next lunar eclipse visible from one place.
type LunarEclipseSearch struct {
	Type     swisseph.EclipseFlag
	Times    LunarEclipseTimes
	MoonRise float64
	MoonSet  float64
	Attr     LunarEclipseAttributes
}

// Atmosphere describes observing conditions for heliacal calculations.
// Zero fields select the library's defaults.
type Atmosphere struct {
	Pressure    float64 // hPa
	Temperature float64 // °C
	Humidity    float64 // percent
	Extinction  float64 // coefficient, or meteorological range in km when > 1
}

func (a Atmosphere) values() []float64 {
	return []float64{a.Pressure, a.Temperature, a.Humidity, a.Extinction}
}

// Observer describes the observer for heliacal calculations. Zero fields
// select the library's defaults.
type Observer struct {
	Age           float64 // years
	SnellenRatio  float64
	Binocular     bool
	Magnification float64
	Aperture      float64 // mm
	Transmission  float64
}

func (o Observer) values() []float64 {
	bin := 0.0
	if o.Binocular {
		bin = 1
	}
	return []float64{o.Age, o.SnellenRatio, bin, o.Magnification, o.Aperture, o.Transmission}
}

// HeliacalTimes are the start, optimum and end of a heliacal event, in
// Julian days UT.
type HeliacalTimes struct {
	Start   float64
	Optimum float64
	End     float64
}

// HeliacalPheno are the visibility details of a heliacal event.
type HeliacalPheno struct {
	ObjectAltitude        float64 // topocentric, unrefracted
	ObjectAppAltitude     float64
	ObjectGeoAltitude     float64
	ObjectAzimuth         float64
	SunAltitude           float64
	SunAzimuth            float64
	ArcusVisionisTopo     float64
	ArcusVisionis         float64
	AzimuthDifference     float64
	LongitudeDifference   float64
	Extinction            float64
	MinArcusVisionis      float64
	FirstVisible          float64 // Julian day
	BestVisible           float64
	LastVisible           float64
	BestVisibleYallop     float64
	CrescentWidth         float64
	YallopQ               float64
	YallopCriterion       float64
	Parallax              float64
	Magnitude             float64
	ObjectRiseSet         float64
	SunRiseSet            float64
	Lag                   float64
	VisibilityDuration    float64
	CrescentLength        float64
	ElongationArcVisionis float64
	Illumination          float64 // percent
}

func heliacalPhenoOf(v []float64) HeliacalPheno {
	return HeliacalPheno{
		ObjectAltitude:        v[0],
		ObjectAppAltitude:     v[1],
		ObjectGeoAltitude:     v[2],
		ObjectAzimuth:         v[3],
		SunAltitude:           v[4],
		SunAzimuth:            v[5],
		ArcusVisionisTopo:     v[6],
		ArcusVisionis:         v[7],
		AzimuthDifference:     v[8],
		LongitudeDifference:   v[9],
		Extinction:            v[10],
		MinArcusVisionis:      v[11],
		FirstVisible:          v[12],
		BestVisible:           v[13],
		LastVisible:           v[14],
		BestVisibleYallop:     v[15],
		CrescentWidth:         v[16],
		YallopQ:               v[17],
		YallopCriterion:       v[18],
		Parallax:              v[19],
		Magnitude:             v[20],
		ObjectRiseSet:         v[21],
		SunRiseSet:            v[22],
		Lag:                   v[23],
		VisibilityDuration:    v[24],
		CrescentLength:        v[25],
		ElongationArcVisionis: v[26],
		Illumination:          v[27],
	}
}

// VisionMode is the eye adaptation swe_vis_limit_mag assumed.
type VisionMode int32

const (
	Photopic VisionMode = swisseph.PhotopicFlag
	Scotopic VisionMode = swisseph.ScotopicFlag
	Mesopic  VisionMode = swisseph.MixedopicFlag
)

// VisLimit is the limiting visual magnitude for an object and the
// geometry it was computed for.
type VisLimit struct {
	Mode            VisionMode
	LimitingMag     float64
	ObjectAltitude  float64
	ObjectAzimuth   float64
	SunAltitude     float64
	SunAzimuth      float64
	MoonAltitude    float64
	MoonAzimuth     float64
	ObjectMagnitude float64
}

// SplitDegree is a decimal angle broken into parts by swe_split_deg.
type SplitDegree struct {
	Degrees        int
	Minutes        int
	Seconds        int
	SecondFraction float64
	Sign           int // zodiac sign index or +1/-1, depending on the flags
}
