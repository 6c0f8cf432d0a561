// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/zowe/zowe-cli-sub019/cmd/zowe"

func main() {
	cmd.Execute()
}
