package texttosql

// schemaDDL is the fixed textual description of the store's relational
// schema embedded in every SQL-generation prompt. The schema is owned by
// the external store; table and column names are kept exactly as it
// defines them.
const schemaDDL = `
-- Parties (suppliers and billed parties)
CREATE TABLE pessoas (
  "idPessoas" INT PRIMARY KEY,
  documento VARCHAR(20) UNIQUE, -- digits-only CPF or CNPJ
  razao_social VARCHAR(255),
  nome_completo VARCHAR(255)
);

-- Expense classifications
CREATE TABLE classificacao (
  "idClassificacao" INT PRIMARY KEY,
  descricao VARCHAR(100),
  tipo VARCHAR(20) -- e.g. 'DESPESA'
);

-- Invoice movements
CREATE TABLE movimentos (
  "idMovimento" INT PRIMARY KEY,
  numero_nota_fiscal VARCHAR(50),
  data_emissao DATE,
  valor_total FLOAT,
  "idFornecedor" INT, -- FK -> pessoas."idPessoas"
  "idFaturado" INT    -- FK -> pessoas."idPessoas"
);

-- Join table: a movement carries zero or more classification labels
CREATE TABLE movimento_classificacao (
  "idMovimento" INT,     -- FK -> movimentos."idMovimento"
  "idClassificacao" INT  -- FK -> classificacao."idClassificacao"
);

-- Installments
CREATE TABLE parcelas (
  "idParcela" INT PRIMARY KEY,
  "idMovimento" INT, -- FK -> movimentos."idMovimento"
  numero_parcela INT,
  data_vencimento DATE,
  valor_parcela FLOAT
);
`
