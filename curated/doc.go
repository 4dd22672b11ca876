// This file is part of Saveport.
//
// Saveport is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Saveport is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Saveport.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. It takes a
// formatting pattern and placeholder values, like fmt.Errorf(), and returns
// an error. The pattern is retained and is used to differentiate curated
// errors:
//
//	e := curated.Errorf("store: %v", err)
//
//	if curated.Is(e, "store: %v") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar to Is() but checks for the pattern anywhere
// in the error chain rather than only at the head.
//
// The Error() function implementation normalises the message chain, removing
// duplicate adjacent parts. This alleviates the problem of when and how to
// wrap errors: wrapping the same pattern twice does not produce a stuttering
// message.
//
// There is no special provision for sentinel errors but they are achievable
// in practice through Is() and Has(). Sentinel patterns should be stored as
// a const string, suitably named and commented, next to the function that
// returns them.
package curated
