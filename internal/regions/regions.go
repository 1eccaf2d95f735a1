// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package regions enumerates the region identifiers the emulator serves,
// one backend per identifier, across the standard, US GovCloud and China
// partitions. The lists mirror the CloudWatch Logs endpoints of those
// partitions.
package regions

// Standard is the aws partition.
var Standard = []string{
	"ap-east-1",
	"ap-northeast-1",
	"ap-northeast-2",
	"ap-south-1",
	"ap-southeast-1",
	"ap-southeast-2",
	"ca-central-1",
	"eu-central-1",
	"eu-north-1",
	"eu-west-1",
	"eu-west-2",
	"eu-west-3",
	"me-south-1",
	"sa-east-1",
	"us-east-1",
	"us-east-2",
	"us-west-1",
	"us-west-2",
}

// USGov is the aws-us-gov partition.
var USGov = []string{
	"us-gov-east-1",
	"us-gov-west-1",
}

// China is the aws-cn partition.
var China = []string{
	"cn-north-1",
	"cn-northwest-1",
}

// All returns every supported region identifier across the three
// partitions.
func All() []string {
	out := make([]string, 0, len(Standard)+len(USGov)+len(China))
	out = append(out, Standard...)
	out = append(out, USGov...)
	out = append(out, China...)
	return out
}
