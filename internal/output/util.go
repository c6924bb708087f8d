package output

import "strconv"

func intToString(v int) string { return strconv.Itoa(v) }
