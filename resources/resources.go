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

// Package resources locates the .vizcaddy data directory that holds
// configuration, game profiles and the model manifest. The directory is a
// relative path, resolved against the working directory; it is not placed
// under the user's home directory.
package resources

import "path/filepath"

const baseDir = ".vizcaddy"

// JoinPath joins path elements under the relative .vizcaddy directory, skipping
// any empty elements so callers don't need to special-case optional
// components.
func JoinPath(path ...string) (string, error) {
	elements := make([]string, 0, len(path)+1)
	elements = append(elements, baseDir)

	for _, p := range path {
		if p == "" {
			continue
		}
		elements = append(elements, p)
	}

	return filepath.Join(elements...), nil
}
