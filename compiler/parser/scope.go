package parser

// scope tracks what the enclosing construct permits. One entry per
// function body; loops, switches and labels mutate the top entry.
type scope struct {
	returnOK    bool
	loops       int
	switches    int
	waitfors    int // composite waitfor branch depth
	tries       int // try blocks still open to waitfor reinterpretation
	tryCollapse int // line of the first collapse riding on that reinterpretation
	labels      map[string]bool
	funcDepth   int
}

func (self *parseCtx) pushScope(returnOK bool) {
	self.scopes = append(self.scopes, &scope{
		returnOK:  returnOK,
		labels:    map[string]bool{},
		funcDepth: len(self.scopes),
	})
}

func (self *parseCtx) popScope() {
	self.scopes = self.scopes[:len(self.scopes)-1]
}

func (self *parseCtx) scope() *scope {
	return self.scopes[len(self.scopes)-1]
}

func (self *parseCtx) enterLoop() {
	self.scope().loops++
}

func (self *parseCtx) leaveLoop() {
	self.scope().loops--
}

func (self *parseCtx) enterSwitch() {
	self.scope().switches++
}

func (self *parseCtx) leaveSwitch() {
	self.scope().switches--
}

func (self *parseCtx) declareLabel(name string, line int) {
	sc := self.scope()
	if sc.labels[name] {
		self.errStructural(line, "label %q already declared", name)
	}
	sc.labels[name] = true
}

func (self *parseCtx) dropLabel(name string) {
	delete(self.scope().labels, name)
}

func (self *parseCtx) checkLabel(name string, line int) {
	if !self.scope().labels[name] {
		self.errStructural(line, "undefined label %q", name)
	}
}
