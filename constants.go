package swisseph

// Values in this file mirror swephexp.h bit for bit. Callers OR flags
// together before handing them to the native layer, so nothing here may be
// renumbered.

// Unit conversions and limits.
const (
	AUnitToKm        = 149597870.7
	AUnitToLightyear = 1.5812507409819728411242766893179e-5 // 1 / 63241.07708427
	AUnitToParsec    = 4.8481368110952742659276431719005e-6 // 1 / 206264.8062471

	// MaxStName is the size of a star name buffer, including the NUL.
	MaxStName = 256

	TJDInvalid       = 99999999.0
	SimulateVictorVB = 1
)

// Calendar selects the calendar of a civil date.
type Calendar int32

const (
	JulCal  Calendar = 0
	GregCal Calendar = 1
)

// Body identifies a planet, node, asteroid or fictitious point.
type Body int32

const (
	EclNut Body = -1

	Sun     Body = 0
	Moon    Body = 1
	Mercury Body = 2
	Venus   Body = 3
	Mars    Body = 4
	Jupiter Body = 5
	Saturn  Body = 6
	Uranus  Body = 7
	Neptune Body = 8
	Pluto   Body = 9

	MeanNode Body = 10
	TrueNode Body = 11
	MeanApog Body = 12
	OscuApog Body = 13
	Earth    Body = 14

	Chiron Body = 15
	Pholus Body = 16
	Ceres  Body = 17
	Pallas Body = 18
	Juno   Body = 19
	Vesta  Body = 20

	IntpApog Body = 21
	IntpPerg Body = 22

	NPlanets      Body = 23
	AstOffset     Body = 10000
	Varuna        Body = AstOffset + 20000
	FictOffset    Body = 40
	FictOffset1   Body = 39
	FictMax       Body = 999
	NFictElem     Body = 15
	CometOffset   Body = 1000
	NAllNatPoints Body = NPlanets + NFictElem

	// Hamburger or Uranian "planets".
	Cupido     Body = 40
	Hades      Body = 41
	Zeus       Body = 42
	Kronos     Body = 43
	Apollon    Body = 44
	Admetos    Body = 45
	Vulkanus   Body = 46
	Poseidon   Body = 47
	Isis       Body = 48
	Nibiru     Body = 49
	Harrington Body = 50

	NeptuneLeverrier Body = 51
	NeptuneAdams     Body = 52
	PlutoLowell      Body = 53
	PlutoPickering   Body = 54
	Vulcan           Body = 55
	WhiteMoon        Body = 56
	Proserpina       Body = 57
	Waldemath        Body = 58

	FixStar Body = -10
)

// Asteroid returns the body number of the numbered minor planet n.
func Asteroid(n int32) Body {
	return AstOffset + Body(n)
}

// Indices into the ascmc array returned by the house functions.
const (
	Asc    = 0
	MC     = 1
	ARMC   = 2
	Vertex = 3
	EquAsc = 4
	CoAsc1 = 5
	CoAsc2 = 6
	PolAsc = 7
	NAscMC = 8
)

// CalcFlag is the iflag bitmask of the swe_calc family.
type CalcFlag int32

const (
	FlagJPLEph        CalcFlag = 1
	FlagSwiEph        CalcFlag = 2
	FlagMosEph        CalcFlag = 4
	FlagHelCtr        CalcFlag = 8
	FlagTruePos       CalcFlag = 16
	FlagJ2000         CalcFlag = 32
	FlagNoNut         CalcFlag = 64
	FlagSpeed3        CalcFlag = 128
	FlagSpeed         CalcFlag = 256
	FlagNoGDefl       CalcFlag = 512
	FlagNoAberr       CalcFlag = 1024
	FlagAstrometric   CalcFlag = FlagNoAberr | FlagNoGDefl
	FlagEquatorial    CalcFlag = 2 * 1024
	FlagXYZ           CalcFlag = 4 * 1024
	FlagRadians       CalcFlag = 8 * 1024
	FlagBaryCtr       CalcFlag = 16 * 1024
	FlagTopoCtr       CalcFlag = 32 * 1024
	FlagOrbelAA       CalcFlag = FlagTopoCtr
	FlagSidereal      CalcFlag = 64 * 1024
	FlagICRS          CalcFlag = 128 * 1024
	FlagDPsiDEps1980  CalcFlag = 256 * 1024
	FlagJPLHor        CalcFlag = FlagDPsiDEps1980
	FlagJPLHorApprox  CalcFlag = 512 * 1024
	FlagDefaultEph    CalcFlag = FlagSwiEph
	FlagEphemerisMask CalcFlag = FlagJPLEph | FlagSwiEph | FlagMosEph
)

// Has reports whether every bit of mask is set in f.
func (f CalcFlag) Has(mask CalcFlag) bool {
	return f&mask == mask
}

// Ephemeris returns the ephemeris-selection bits of f.
func (f CalcFlag) Ephemeris() CalcFlag {
	return f & FlagEphemerisMask
}

// JPL ephemeris file names accepted by SetJPLFile.
const (
	JPLFileDE200  = "de200.eph"
	JPLFileDE405  = "de405.eph"
	JPLFileDE406  = "de406.eph"
	JPLFileDE406e = "de406e.eph"
	JPLFileDE414  = "de414.eph"
	JPLFileDE421  = "de421.eph"
	JPLFileDE422  = "de422.eph"
	JPLFileDE430  = "de430.eph"
	JPLFileDE431  = "de431.eph"
)

// SidMode selects an ayanamsa for sidereal computations.
type SidMode int32

const (
	SidmFaganBradley       SidMode = 0
	SidmLahiri             SidMode = 1
	SidmDeluce             SidMode = 2
	SidmRaman              SidMode = 3
	SidmUshashashi         SidMode = 4
	SidmKrishnamurti       SidMode = 5
	SidmDjwhalKhul         SidMode = 6
	SidmYukteshwar         SidMode = 7
	SidmJNBhasin           SidMode = 8
	SidmBabylKugler1       SidMode = 9
	SidmBabylKugler2       SidMode = 10
	SidmBabylKugler3       SidMode = 11
	SidmBabylHuber         SidMode = 12
	SidmBabylEtpsc         SidMode = 13
	SidmAldebaran15Tau     SidMode = 14
	SidmHipparchos         SidMode = 15
	SidmSassanian          SidMode = 16
	SidmGalcent0Sag        SidMode = 17
	SidmJ2000              SidMode = 18
	SidmJ1900              SidMode = 19
	SidmB1950              SidMode = 20
	SidmSuryasiddhanta     SidMode = 21
	SidmSuryasiddhantaMSun SidMode = 22
	SidmAryabhata          SidMode = 23
	SidmAryabhataMSun      SidMode = 24
	SidmSSRevati           SidMode = 25
	SidmSSCitra            SidMode = 26
	SidmTrueCitra          SidMode = 27
	SidmTrueRevati         SidMode = 28
	SidmTruePushya         SidMode = 29
	SidmGalcentRGilbrand   SidMode = 30
	SidmGalequIAU1958      SidMode = 31
	SidmGalequTrue         SidMode = 32
	SidmGalequMula         SidMode = 33
	SidmGalalignMardyks    SidMode = 34
	SidmTrueMula           SidMode = 35
	SidmGalcentMulaWilhelm SidMode = 36
	SidmAryabhata522       SidMode = 37
	SidmBabylBritton       SidMode = 38
	SidmTrueSheoran        SidMode = 39
	SidmGalcentCochrane    SidMode = 40
	SidmGalequFiorenza     SidMode = 41
	SidmValensMoon         SidMode = 42
	SidmUser               SidMode = 255
	NSidmPredef            SidMode = 43
)

// Option bits ORed into a SidMode.
const (
	SidBits        SidMode = 256
	SidBitEclT0    SidMode = 256
	SidBitSSYPlane SidMode = 512
	SidBitUserUT   SidMode = 1024
)

// NodeMethod selects how swe_nod_aps computes nodes and apsides.
type NodeMethod int32

const (
	NodBitMean    NodeMethod = 1
	NodBitOscu    NodeMethod = 2
	NodBitOscuBar NodeMethod = 4
	NodBitFoPoint NodeMethod = 256
)

// EclipseFlag is both the eclipse-type filter passed to the search
// functions and the type bitmask they return.
type EclipseFlag int32

const (
	EclCentral          EclipseFlag = 1
	EclNonCentral       EclipseFlag = 2
	EclTotal            EclipseFlag = 4
	EclAnnular          EclipseFlag = 8
	EclPartial          EclipseFlag = 16
	EclAnnularTotal     EclipseFlag = 32
	EclPenumbral        EclipseFlag = 64
	EclAllTypesSolar    EclipseFlag = EclCentral | EclNonCentral | EclTotal | EclAnnular | EclPartial | EclAnnularTotal
	EclAllTypesLunar    EclipseFlag = EclTotal | EclPartial | EclPenumbral
	EclVisible          EclipseFlag = 128
	EclMaxVisible       EclipseFlag = 256
	Ecl1stVisible       EclipseFlag = 512
	EclPartBegVisible   EclipseFlag = 512
	Ecl2ndVisible       EclipseFlag = 1024
	EclTotBegVisible    EclipseFlag = 1024
	Ecl3rdVisible       EclipseFlag = 2048
	EclTotEndVisible    EclipseFlag = 2048
	Ecl4thVisible       EclipseFlag = 4096
	EclPartEndVisible   EclipseFlag = 4096
	EclPenumbBegVisible EclipseFlag = 8192
	EclPenumbEndVisible EclipseFlag = 16384
	EclOccBegDaylight   EclipseFlag = 8192
	EclOccEndDaylight   EclipseFlag = 16384
	EclOneTry           EclipseFlag = 32 * 1024
)

// Has reports whether every bit of mask is set in f.
func (f EclipseFlag) Has(mask EclipseFlag) bool {
	return f&mask == mask
}

// RiseFlag is the rsmi argument of swe_rise_trans: one event bit plus
// optional disc and refraction modifiers.
type RiseFlag int32

const (
	CalcRise     RiseFlag = 1
	CalcSet      RiseFlag = 2
	CalcMTransit RiseFlag = 4
	CalcITransit RiseFlag = 8

	BitGeoctrNoEclLat RiseFlag = 128
	BitDiscCenter     RiseFlag = 256
	BitNoRefraction   RiseFlag = 512
	BitCivilTwilight  RiseFlag = 1024
	BitNauticTwilight RiseFlag = 2048
	BitAstroTwilight  RiseFlag = 4096
	BitDiscBottom     RiseFlag = 8192
	BitFixedDiscSize  RiseFlag = 16 * 1024
)

// CoordDirection selects the conversion performed by swe_azalt and
// swe_azalt_rev.
type CoordDirection int32

const (
	Ecl2Hor CoordDirection = 0
	Equ2Hor CoordDirection = 1
	Hor2Ecl CoordDirection = 0
	Hor2Equ CoordDirection = 1
)

// RefracMode selects the direction of swe_refrac.
type RefracMode int32

const (
	TrueToApp RefracMode = 0
	AppToTrue RefracMode = 1
)

// SplitFlag controls rounding in swe_split_deg.
type SplitFlag int32

const (
	SplitDegRoundSec  SplitFlag = 1
	SplitDegRoundMin  SplitFlag = 2
	SplitDegRoundDeg  SplitFlag = 4
	SplitDegZodiacal  SplitFlag = 8
	SplitDegKeepSign  SplitFlag = 16
	SplitDegKeepDeg   SplitFlag = 32
	SplitDegNakshatra SplitFlag = 1024
)

// HeliacalEvent is the TypeEvent argument of the heliacal functions.
type HeliacalEvent int32

const (
	HeliacalRising    HeliacalEvent = 1
	HeliacalSetting   HeliacalEvent = 2
	MorningFirst      HeliacalEvent = HeliacalRising
	EveningLast       HeliacalEvent = HeliacalSetting
	EveningFirst      HeliacalEvent = 3
	MorningLast       HeliacalEvent = 4
	AcronychalRising  HeliacalEvent = 5
	AcronychalSetting HeliacalEvent = 6
	CosmicalSetting   HeliacalEvent = AcronychalSetting
)

// HeliacalFlag is the helflag bitmask. The low bits carry a CalcFlag
// ephemeris selection.
type HeliacalFlag int32

const (
	HelFlagLongSearch     HeliacalFlag = 128
	HelFlagHighPrecision  HeliacalFlag = 256
	HelFlagOpticalParams  HeliacalFlag = 512
	HelFlagNoDetails      HeliacalFlag = 1024
	HelFlagSearch1Period  HeliacalFlag = 1 << 11
	HelFlagVisLimDark     HeliacalFlag = 1 << 12
	HelFlagVisLimNoMoon   HeliacalFlag = 1 << 13
	HelFlagVisLimPhotopic HeliacalFlag = 1 << 14
	HelFlagAvKindVR       HeliacalFlag = 1 << 15
	HelFlagAvKindPTO      HeliacalFlag = 1 << 16
	HelFlagAvKindMin7     HeliacalFlag = 1 << 17
	HelFlagAvKindMin9     HeliacalFlag = 1 << 18
	HelFlagAvKind         HeliacalFlag = HelFlagAvKindVR | HelFlagAvKindPTO | HelFlagAvKindMin7 | HelFlagAvKindMin9
)

// Vision modes reported by swe_vis_limit_mag.
const (
	PhotopicFlag  = 0
	ScotopicFlag  = 1
	MixedopicFlag = 2
)

// HouseSystem is the single-letter house method code.
type HouseSystem byte

const (
	HousePlacidus      HouseSystem = 'P'
	HouseKoch          HouseSystem = 'K'
	HousePorphyrius    HouseSystem = 'O'
	HouseRegiomontanus HouseSystem = 'R'
	HouseCampanus      HouseSystem = 'C'
	HouseEqual         HouseSystem = 'E'
	HouseEqualAsc      HouseSystem = 'A'
	HouseEqualMC       HouseSystem = 'D'
	HouseEqualAries    HouseSystem = 'N'
	HouseWholeSign     HouseSystem = 'W'
	HouseAlcabitus     HouseSystem = 'B'
	HouseMorinus       HouseSystem = 'M'
	HouseMeridian      HouseSystem = 'X'
	HouseHorizontal    HouseSystem = 'H'
	HouseTopocentric   HouseSystem = 'T'
	HouseGauquelin     HouseSystem = 'G'
	HouseVehlow        HouseSystem = 'V'
	HouseAPC           HouseSystem = 'Y'
	HouseCarter        HouseSystem = 'F'
	HouseSunshine      HouseSystem = 'I'
	HouseKrusinski     HouseSystem = 'U'
	HousePullenSD      HouseSystem = 'L'
	HousePullenSR      HouseSystem = 'Q'
	HouseSripati       HouseSystem = 'S'
)

// Cusps returns the number of house cusps the system produces: 36 for
// Gauquelin sectors, 12 otherwise.
func (h HouseSystem) Cusps() int {
	if h == HouseGauquelin {
		return 36
	}
	return 12
}
