// SPDX-License-Identifier: MPL-2.0

package options

import (
	"fmt"
	"sync"
)

// Option keys of the SWE build.
const (
	KeyBuildDir          = "buildDir"
	KeyCompiler          = "compiler"
	KeyCompileMode       = "compileMode"
	KeyParallelization   = "parallelization"
	KeyComputeCapability = "computeCapability"
	KeySolver            = "solver"
	KeyVectorize         = "vectorize"
	KeyShowVectorization = "showVectorization"
	KeyPlatform          = "platform"
	KeyOpenGL            = "openGL"
	KeyWriteNetCDF       = "writeNetCDF"
	KeyASAGI             = "asagi"
	KeyXMLRuntime        = "xmlRuntime"
	KeyLibSDLDir         = "libSDLDir"
	KeyCUDAToolkitDir    = "cudaToolkitDir"
	KeyNetCDFDir         = "netCDFDir"
	KeyASAGIDir          = "asagiDir"
	KeyLibXMLDir         = "libxmlDir"
)

// Parallelization backends.
const (
	ParallelNone        = "none"
	ParallelCUDA        = "cuda"
	ParallelMPIWithCUDA = "mpi_with_cuda"
	ParallelMPI         = "mpi"
)

var defaultSchema = sync.OnceValue(func() *Schema {
	s, err := NewSchema(sweOptions(), sweConstraints())
	if err != nil {
		panic(fmt.Sprintf("built-in SWE option schema: %v", err))
	}
	return s
})

// Default returns the built-in SWE option schema.
func Default() *Schema { return defaultSchema() }

// Resolve resolves user input against the built-in SWE schema.
func Resolve(user map[string]string) (*ResolvedConfig, error) {
	return Default().Resolve(user)
}

func sweOptions() []Option {
	return []Option{
		{Name: KeyBuildDir, Domain: Path(), Default: "build",
			Description: "directory receiving build artifacts"},
		{Name: KeyCompiler, Domain: Enum("gnu", "intel", "cray"), Default: "gnu",
			Description: "compiler toolchain"},
		{Name: KeyCompileMode, Domain: Enum("release", "debug"), Default: "release",
			Description: "optimization and debug-symbol profile"},
		{Name: KeyParallelization, Domain: Enum(ParallelNone, ParallelCUDA, ParallelMPIWithCUDA, ParallelMPI), Default: ParallelNone,
			Description: "parallelization backend"},
		{Name: KeyComputeCapability, Domain: Enum("sm_10", "sm_11", "sm_12", "sm_13", "sm_20", "sm_21", "sm_22", "sm_23", "sm_30", "sm_35"), Optional: true,
			Description: "CUDA compute capability of the target card"},
		{Name: KeySolver, Domain: Enum("rusanov", "fwave", "augrie", "hybrid", "fwavevec"), Default: "augrie",
			Description: "Riemann solver"},
		{Name: KeyVectorize, Domain: Toggle(), Default: "off",
			Description: "add compiler options for vectorization"},
		{Name: KeyShowVectorization, Domain: Toggle(), Default: "off",
			Description: "print loop vectorization reports (Intel compiler only)"},
		{Name: KeyPlatform, Domain: Enum("default", "mic"), Default: "default",
			Description: "target platform"},
		{Name: KeyOpenGL, Domain: Toggle(), Default: "no",
			Description: "build the OpenGL visualization"},
		{Name: KeyWriteNetCDF, Domain: Toggle(), Default: "no",
			Description: "write output in the netCDF format"},
		{Name: KeyASAGI, Domain: Toggle(), Default: "no",
			Description: "read bathymetry and displacement through ASAGI"},
		{Name: KeyXMLRuntime, Domain: Toggle(), Default: "no",
			Description: "read runtime parameters from an XML file"},
		{Name: KeyLibSDLDir, Domain: Path(), Default: "/usr",
			Description: "installation prefix of libSDL"},
		{Name: KeyCUDAToolkitDir, Domain: Path(), Default: "/usr/local/cuda",
			Description: "installation prefix of the CUDA toolkit"},
		{Name: KeyNetCDFDir, Domain: Path(), Default: "/usr",
			Description: "installation prefix of netCDF"},
		{Name: KeyASAGIDir, Domain: Path(), Optional: true,
			Description: "installation prefix of ASAGI"},
		{Name: KeyLibXMLDir, Domain: Path(), Optional: true,
			Description: "installation prefix of libxml2"},
	}
}

func sweConstraints() []Constraint {
	cuda := OneOf(KeyParallelization, ParallelCUDA, ParallelMPIWithCUDA)
	return []Constraint{
		Implies("fwavevec-requires-vectorize", Equals(KeySolver, "fwavevec"), Enabled(KeyVectorize)),
		Implies("cuda-requires-compute-capability", cuda, IsSet(KeyComputeCapability)),
		Implies("cuda-requires-toolkit", cuda, IsSet(KeyCUDAToolkitDir)),
		Implies("openGL-requires-cuda", Enabled(KeyOpenGL), Equals(KeyParallelization, ParallelCUDA)),
		Implies("openGL-requires-sdl", Enabled(KeyOpenGL), IsSet(KeyLibSDLDir)),
		Implies("netCDF-requires-library", Enabled(KeyWriteNetCDF), IsSet(KeyNetCDFDir)),
		Implies("asagi-requires-library", Enabled(KeyASAGI), IsSet(KeyASAGIDir)),
		Implies("xmlRuntime-requires-libxml", Enabled(KeyXMLRuntime), IsSet(KeyLibXMLDir)),
		Implies("showVectorization-requires-intel", Enabled(KeyShowVectorization), Equals(KeyCompiler, "intel")),
		Implies("mic-requires-intel", Equals(KeyPlatform, "mic"), Equals(KeyCompiler, "intel")),
	}
}
