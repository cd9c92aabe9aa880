package main

import wrapper "clangfmt-wrapper/internal/app"

func main() {
	wrapper.Main()
}
