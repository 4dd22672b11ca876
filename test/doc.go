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

// Package test contains helper functions to remove common boilerplate from
// Go tests.
//
// The Expect functions record a test error when the expectation is not met
// and allow the test to continue. The Demand functions are identical except
// that failure to meet the expectation is a test fatality.
//
// All functions accept optional tags arguments. Tags are printed alongside
// any test failure and are useful for identifying the failing iteration of
// a test loop.
package test
