package main

import (
	gopsd "github.com/doismellburning/gopsd/src"
)

func main() {
	gopsd.GpxLoggerMain()
}
