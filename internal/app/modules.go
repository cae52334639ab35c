package app

import (
	"github.com/vk/blockscript/blocks/function"
	"github.com/vk/blockscript/blocks/keycheck"
	"github.com/vk/blockscript/blocks/parse"
	"github.com/vk/blockscript/blocks/rawcode"
	"github.com/vk/blockscript/blocks/request"
	"github.com/vk/blockscript/internal/registry"
)

// coreModules is the definitive list of all block kinds that are compiled
// into the blockscript binary.
var coreModules = []registry.Module{
	&parse.Module{},
	&request.Module{},
	&function.Module{},
	&keycheck.Module{},
	&rawcode.Module{},
}
