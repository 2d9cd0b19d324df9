// Package main provides the orbishell command.
//
// orbishell builds the Orbi shell, a three-legged fan enclosure, as a
// voxel CSG model and writes it as a binary STL.
//
// Usage:
//
//	orbishell
//	orbishell build --params tuned.zy --output shell.stl
//	orbishell config > orbishell.yaml
//
// See --help for all available options.
package main

func main() {
	Execute()
}
