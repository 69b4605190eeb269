// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package description

import (
	"fmt"
)

// Wire versions at which optional command features became available.
const (
	collationWireVersion   = 5
	hintOnWriteWireVersion = 9
)

// CollationSupported returns an error if the given wire version range does
// not support collation.
func CollationSupported(wireVersion *VersionRange) error {
	if wireVersion != nil && wireVersion.Max < collationWireVersion {
		return fmt.Errorf("the collation option is only supported for servers 3.4 or newer")
	}

	return nil
}

// HintOnWriteSupported returns an error if the given wire version range does
// not support hints on write commands.
func HintOnWriteSupported(wireVersion *VersionRange) error {
	if wireVersion != nil && wireVersion.Max < hintOnWriteWireVersion {
		return fmt.Errorf("the hint option on write commands is only supported for servers 4.4 or newer")
	}

	return nil
}
