// Package sweph is the typed façade over the Swiss Ephemeris exports.
//
// Each method marshals its arguments into guest scratch memory, invokes one
// native export, maps the status code and copies results back into Go
// values. Scratch blocks are freed on every path, including failures.
//
// Three outcomes are distinguished:
//
//   - success returns a populated result
//   - a condition the library reports as "nothing found" (unknown star,
//     no eclipse, circumpolar body) returns a nil result and nil error
//   - everything else returns an *errors.Error; native failures carry the
//     library's status and diagnostic text
//
// Usage:
//
//	swe, err := sweph.Open(ctx, wasmBytes, sweph.WithEpheDir("./ephe"))
//	if err != nil {
//		return err
//	}
//	defer swe.Close(ctx)
//
//	jd, _ := swe.JulDay(ctx, 2000, 1, 1, 12, swisseph.GregCal)
//	sun, err := swe.CalcUT(ctx, jd, swisseph.Sun, swisseph.FlagSwiEph|swisseph.FlagSpeed)
package sweph
