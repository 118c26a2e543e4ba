// This file is part of Vizcaddy.
//
// Vizcaddy is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Vizcaddy is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Vizcaddy.  If not, see <https://www.gnu.org/licenses/>.

package main

import "testing"

func TestRunInvalidFlagReturnsTwo(t *testing.T) {
	if got := run([]string{"--not-a-real-flag"}); got != 2 {
		t.Fatalf("expected exit code 2 for a bad flag, got %d", got)
	}
}

func TestRunListMonitorsReturnsZero(t *testing.T) {
	if got := run([]string{"--list-monitors"}); got != 0 {
		t.Fatalf("expected exit code 0 for --list-monitors, got %d", got)
	}
}
