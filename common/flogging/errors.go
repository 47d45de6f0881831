/*
SPDX-License-Identifier: Apache-2.0
*/

package flogging

import "github.com/pkg/errors"

func errUnknownFormat(format string) error {
	return errors.Errorf("unknown log format: %s", format)
}

func errUnknownLevel(name string) error {
	return errors.Errorf("invalid logging level: %s", name)
}
